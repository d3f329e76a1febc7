// Package recommend orchestrates the two recommendation paths: the local
// deterministic engine (score, assemble, rank) and the server path that
// filters the catalog and delegates analysis to the LLM oracle.
package recommend

import (
	"sort"

	"github.com/aura/counsel/internal/ranking"
	"github.com/aura/counsel/internal/types"
)

// scoreThreshold drops pairs with too little signal to be worth showing.
const scoreThreshold = 0.3

// maxRecommendations caps the ranked list the local engine returns.
const maxRecommendations = 10

// GenerateLocal runs the deterministic engine over the whole catalog: every
// (university, course) pair is scored, pairs at or below the threshold are
// dropped, and the rest come back sorted by score, best first, capped at ten.
// Ties keep catalog order.
func GenerateLocal(catalog []types.University, profile types.StudentProfile) []types.Recommendation {
	recommendations := make([]types.Recommendation, 0)

	for _, u := range catalog {
		for _, c := range u.Courses {
			score := ranking.MatchScore(profile, u, c)
			if score <= scoreThreshold {
				continue
			}
			recommendations = append(recommendations, assemble(profile, u, c, score))
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}
