package models

// Decision is the outcome of an access check for (session, note, passcode).
// It is produced by the access facade and mapped to an HTTP response by the
// transport layer.
type Decision int

const (
	// DecisionDenied means the caller may not access the note: either no
	// grant exists, the grant expired, or a supplied passcode was wrong.
	DecisionDenied Decision = iota

	// DecisionOwner means the session identity owns the note. Owners get
	// unconditional access, including delete.
	DecisionOwner

	// DecisionSharedGrantee means a non-expired grant allows the caller to
	// read the note (and any required passcode has been verified).
	DecisionSharedGrantee

	// DecisionNeedsPasscode means access would be allowed, but the note is
	// encrypted and no passcode was supplied. No content is released.
	DecisionNeedsPasscode
)

// Allowed reports whether the decision releases note content.
func (d Decision) Allowed() bool {
	return d == DecisionOwner || d == DecisionSharedGrantee
}

// String returns a log-friendly name for the decision.
func (d Decision) String() string {
	switch d {
	case DecisionOwner:
		return "owner"
	case DecisionSharedGrantee:
		return "shared_grantee"
	case DecisionNeedsPasscode:
		return "needs_passcode"
	default:
		return "denied"
	}
}
