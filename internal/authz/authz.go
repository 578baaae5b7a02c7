package authz

import (
	"fmt"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// Action enumerates the operations the engine decides on.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Kind enumerates the entity kinds subject to authorization.
type Kind string

const (
	KindReport   Kind = "report"
	KindVisit    Kind = "visit"
	KindComment  Kind = "comment"
	KindCustomer Kind = "customer"
	KindStaff    Kind = "staff"
)

// Target is the minimal ownership projection of the entity being acted on.
// For creates it describes the parent the new entity will belong to, e.g. the
// report a visit or comment attaches to. AuthorID is set only for comments.
type Target struct {
	Kind     Kind
	OwnerID  int64
	AuthorID int64
}

// ReportTarget builds a target from a report ownership projection.
func ReportTarget(ref domain.ReportRef) Target {
	return Target{Kind: KindReport, OwnerID: ref.SalesID}
}

// VisitTarget builds a target for a visit record under the given report.
func VisitTarget(ref domain.ReportRef) Target {
	return Target{Kind: KindVisit, OwnerID: ref.SalesID}
}

// CommentTarget builds a target for an existing comment. The owner is the
// parent report's owner, the author the comment's writer.
func CommentTarget(ref domain.ReportRef, authorID int64) Target {
	return Target{Kind: KindComment, OwnerID: ref.SalesID, AuthorID: authorID}
}

// CommentCreateTarget builds a target for a new comment on the given report.
func CommentCreateTarget(ref domain.ReportRef) Target {
	return Target{Kind: KindComment, OwnerID: ref.SalesID}
}

// CustomerTarget builds a target for customer master data.
func CustomerTarget() Target {
	return Target{Kind: KindCustomer}
}

// StaffTarget builds a target for staff master data.
func StaffTarget() Target {
	return Target{Kind: KindStaff}
}

// Can decides whether the identity may perform the action on the target.
// It is a pure predicate: no I/O, no side effects. The caller translates a
// denial into the user-facing error taxonomy.
func Can(id domain.Identity, action Action, target Target) domain.Decision {
	switch target.Kind {
	case KindReport, KindVisit:
		return canOnReport(id, action, target)
	case KindComment:
		return canOnComment(id, action, target)
	case KindCustomer:
		return canOnCustomer(id, action)
	case KindStaff:
		return canOnStaff(id)
	}
	return domain.Deny(domain.DenyForbidden, fmt.Sprintf("unknown entity kind %q", target.Kind))
}

// Reports and visit records share one rule set: visits inherit ownership from
// the parent report. Admins may read anything; every mutation is owner-only,
// admins included.
func canOnReport(id domain.Identity, action Action, target Target) domain.Decision {
	switch action {
	case ActionRead:
		if id.IsAdmin() || target.OwnerID == id.SalesID {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyForbidden, "not the report owner")
	case ActionCreate, ActionUpdate, ActionDelete:
		if target.OwnerID == id.SalesID {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyForbidden, "only the report owner may modify it")
	}
	return domain.Deny(domain.DenyForbidden, fmt.Sprintf("unknown action %q", action))
}

func canOnComment(id domain.Identity, action Action, target Target) domain.Decision {
	switch action {
	case ActionRead, ActionCreate:
		// Comments are visible on, and attachable to, a report by its owner
		// or by any admin.
		if id.IsAdmin() || target.OwnerID == id.SalesID {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyForbidden, "not the report owner")
	case ActionUpdate:
		// Authors only. Admins are not exempt.
		if target.AuthorID == id.SalesID {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyForbidden, "only the comment author may edit it")
	case ActionDelete:
		if id.IsAdmin() || target.AuthorID == id.SalesID {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyForbidden, "only the comment author or an admin may delete it")
	}
	return domain.Deny(domain.DenyForbidden, fmt.Sprintf("unknown action %q", action))
}

func canOnCustomer(id domain.Identity, action Action) domain.Decision {
	if action == ActionRead {
		return domain.Allow()
	}
	if id.IsAdmin() {
		return domain.Allow()
	}
	return domain.Deny(domain.DenyForbidden, "customer master data is admin-only")
}

// Staff master data is admin-only for every action, reads included.
func canOnStaff(id domain.Identity) domain.Decision {
	if id.IsAdmin() {
		return domain.Allow()
	}
	return domain.Deny(domain.DenyForbidden, "staff master data is admin-only")
}
