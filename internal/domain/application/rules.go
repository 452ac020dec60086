package application

// TierForScore maps a heuristic credit score to a risk tier. Boundaries are
// inclusive on the lower bound of each tier: exactly 700 is Low, exactly 600
// is Medium.
func TierForScore(score int) RiskTier {
	switch {
	case score >= 700:
		return TierLow
	case score >= 600:
		return TierMedium
	default:
		return TierHigh
	}
}

// StatusForTier derives the initial application status from the risk tier.
func StatusForTier(tier RiskTier) Status {
	switch tier {
	case TierLow:
		return StatusApproved
	case TierMedium:
		return StatusReview
	case TierHigh:
		return StatusDeclined
	default:
		// A record without a tier means scoring never ran.
		return StatusPending
	}
}

// ValidStatus reports whether s is one of the four known states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusReview, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// CanTransition is the single hook for status transition policy. Operator
// overrides are currently allowed between any two valid states; tightening
// the graph means changing this function only, not its callers.
func CanTransition(from, to Status) bool {
	return ValidStatus(from) && ValidStatus(to)
}
