package domain

// DenyReason classifies why a decision denied an action. Reasons map onto the
// service error taxonomy at the route boundary; the core only returns values.
type DenyReason string

const (
	DenyForbidden  DenyReason = "FORBIDDEN"
	DenyValidation DenyReason = "VALIDATION_ERROR"
	DenyNotFound   DenyReason = "NOT_FOUND"
)

// Decision is the result of an authorization or lifecycle check. Decisions
// are plain values; they are never raised as errors inside the core.
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Detail  string
}

// Allow returns a passing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a failing decision with a reason and human-readable detail.
func Deny(reason DenyReason, detail string) Decision {
	return Decision{Allowed: false, Reason: reason, Detail: detail}
}

// Denied reports whether the decision failed.
func (d Decision) Denied() bool {
	return !d.Allowed
}
