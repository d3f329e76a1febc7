package eligibility

import "github.com/aura/counsel/internal/types"

// Band compares a student's 12th percentage against a university's minimum
// requirement with a tolerance window: 10 points above the minimum is a clear
// pass, down to 5 points below still counts as borderline, anything lower is
// out. An unparseable percentage (NaN-ish input collapses to 0 upstream, but
// callers holding raw strings pass parse failures here as negative) lands on
// borderline rather than excluding the student outright.
func Band(percentage, minRequired float64) types.EligibilityStatus {
	if percentage < 0 {
		return types.StatusBorderline
	}
	switch {
	case percentage >= minRequired+10:
		return types.StatusEligible
	case percentage >= minRequired-5:
		return types.StatusBorderline
	default:
		return types.StatusNotEligible
	}
}
