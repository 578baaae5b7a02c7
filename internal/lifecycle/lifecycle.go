// Package lifecycle implements the daily report state machine. A report is
// DRAFT or SUBMITTED; SUBMITTED locks the report body and every child visit
// record until it is reverted to DRAFT. The machine holds no state of its
// own; the report's persisted status is the only state there is.
package lifecycle

import (
	"fmt"

	"github.com/spec-kit/sales-report-service/internal/domain"
)

// CanTransition decides whether a status change is allowed. Requesting the
// state the report is already in is always a validation failure, never a
// silent no-op: a double submit must surface to the caller.
func CanTransition(current, requested domain.ReportStatus, isOwner, isAdmin bool) domain.Decision {
	if !requested.Valid() {
		return domain.Deny(domain.DenyValidation, fmt.Sprintf("unknown report status %q", requested))
	}
	if current == requested {
		if current == domain.ReportStatusSubmitted {
			return domain.Deny(domain.DenyValidation, "report is already submitted")
		}
		return domain.Deny(domain.DenyValidation, "report is already a draft")
	}

	switch requested {
	case domain.ReportStatusSubmitted:
		// Submitting is the owner's act alone.
		if !isOwner {
			return domain.Deny(domain.DenyForbidden, "only the report owner may submit it")
		}
	case domain.ReportStatusDraft:
		// Reverting is open to the owner and to admins.
		if !isOwner && !isAdmin {
			return domain.Deny(domain.DenyForbidden, "only the report owner or an admin may revert it to draft")
		}
	}
	return domain.Allow()
}

// CanMutateChildren reports whether visit records and comments under a report
// in the given state may be created, updated, or deleted.
func CanMutateChildren(current domain.ReportStatus) bool {
	return current == domain.ReportStatusDraft
}

// AssertMutable checks the edit-lock on a report's content and children.
// It is caller-independent: a submitted report is immutable for everyone.
func AssertMutable(current domain.ReportStatus) domain.Decision {
	if current == domain.ReportStatusSubmitted {
		return domain.Deny(domain.DenyValidation, "submitted reports cannot be modified")
	}
	return domain.Allow()
}

// CanDelete decides whether the report itself may be deleted. There is no
// lifecycle path that removes a submitted report; it must be reverted first.
func CanDelete(current domain.ReportStatus, isOwner bool) domain.Decision {
	if !isOwner {
		return domain.Deny(domain.DenyForbidden, "only the report owner may delete it")
	}
	if current == domain.ReportStatusSubmitted {
		return domain.Deny(domain.DenyValidation, "submitted reports cannot be deleted")
	}
	return domain.Allow()
}
