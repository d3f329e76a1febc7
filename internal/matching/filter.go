// Package matching builds the candidate pool: the subset of the catalog that
// survives every hard constraint before any ranking happens.
package matching

import (
	"strings"

	"github.com/aura/counsel/internal/eligibility"
	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/types"
)

// NoResultsMessage accompanies an empty candidate pool.
const NoResultsMessage = "No universities match your current criteria. Consider broadening your search or improving your academic profile."

// NoResultsSuggestions is the fixed set of actionable suggestions returned
// whenever the pool comes back empty. The frontend renders these verbatim, so
// the list and its order are part of the API contract.
func NoResultsSuggestions() []string {
	return []string{
		"Increase your budget range",
		"Consider more locations (cities or states)",
		"Focus on improving your 12th percentage",
		"Improve your entrance exam scores (JEE Mains/Advanced, NEET, CUET)",
	}
}

// FilterCandidates applies the hard constraints to the full catalog and
// returns the candidate pool. A record is retained only when all of the
// following hold:
//
//   - city, annual_fees, and min_12th_score_required are present. Records
//     missing any of the three are excluded outright — missing data is never
//     treated as a wildcard.
//   - some requested location equals the city or the state, case-insensitively.
//   - the parsed annual fee fits the budget ceiling.
//   - the parsed minimum 12th-score requirement does not exceed the
//     student's percentage.
//   - the entrance-exam resolver passes.
//
// The pool is ephemeral and order-irrelevant; callers rank it separately.
func FilterCandidates(catalog []types.University, profile types.AcademicProfile, constraints types.Constraints) []types.University {
	pool := make([]types.University, 0)
	for _, u := range catalog {
		if u.City == "" || u.AnnualFees == "" || u.Min12thScoreRequired == "" {
			continue
		}
		if !locationMatches(constraints.Locations, u) {
			continue
		}
		if parsing.ParseAnnualFees(u.AnnualFees) > constraints.Budget {
			continue
		}
		if float64(parsing.ParseScore(u.Min12thScoreRequired)) > profile.TwelfthPercentage {
			continue
		}
		if !eligibility.MeetsEntranceRequirements(u, profile) {
			continue
		}
		pool = append(pool, u)
	}
	return pool
}

func locationMatches(locations []string, u types.University) bool {
	for _, loc := range locations {
		if strings.EqualFold(loc, u.City) || strings.EqualFold(loc, u.State) {
			return true
		}
	}
	return false
}
