// Package ranking computes weighted compatibility scores between a student
// profile and (university, course) pairs for the local, oracle-free path.
package ranking

import (
	"regexp"
	"strings"

	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/types"
)

// Component weights. They sum to 1.0; the final score is additionally capped
// there in case a future component pushes past it.
const (
	educationWeight = 0.20
	streamWeight    = 0.25
	interestWeight  = 0.20
	careerWeight    = 0.15
	locationWeight  = 0.10
	budgetWeight    = 0.10
)

// neutralRatio is the factor value used when the student skipped an optional
// list (interests, aspirations). Skipping a field must not read as a mismatch.
const neutralRatio = 0.5

var keywordSplit = regexp.MustCompile(`[&\s]+`)

// MatchScore computes the compatibility score for one (university, course)
// pair. The result is always within [0, 1].
func MatchScore(profile types.StudentProfile, u types.University, c types.Course) float64 {
	score := 0.0

	if isEducationCompatible(profile.EducationLevel, c.Degree) {
		score += educationWeight
	}
	if isStreamCompatible(profile.Stream, u.StreamRequirements) {
		score += streamWeight
	}
	score += interestMatchRatio(profile.Interests, c.CareerPaths) * interestWeight
	score += CareerMatchRatio(profile.CareerAspirations, c.CareerPaths) * careerWeight
	if isLocationPreferred(profile.PreferredLocation, u.LocationType) {
		score += locationWeight
	}
	if IsBudgetCompatible(profile.BudgetRange, parsing.ParseAnnualFees(u.AnnualFees)) {
		score += budgetWeight
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func isEducationCompatible(educationLevel, degree string) bool {
	for _, d := range educationCompatibility[educationLevel] {
		if d == degree {
			return true
		}
	}
	return false
}

func isStreamCompatible(stream string, requirements []string) bool {
	aliases, ok := streamAliases[stream]
	if !ok {
		aliases = []string{"Any Stream"}
	}
	for _, req := range requirements {
		for _, alias := range aliases {
			if req == alias {
				return true
			}
		}
	}
	return false
}

// interestMatchRatio measures token-level overlap between the student's
// interests and the course's career paths. Tokens split on whitespace and
// ampersands ("Science & Technology" → science, technology) and match on
// substring containment in either direction. The ratio is matched interest
// tokens over total interest tokens, capped at 1.
func interestMatchRatio(interests, careerPaths []string) float64 {
	if len(interests) == 0 {
		return neutralRatio
	}

	interestKeywords := splitKeywords(interests)
	careerKeywords := splitKeywords(careerPaths)

	matches := 0
	for _, keyword := range interestKeywords {
		for _, careerKeyword := range careerKeywords {
			if strings.Contains(careerKeyword, keyword) || strings.Contains(keyword, careerKeyword) {
				matches++
				break
			}
		}
	}

	total := len(interestKeywords)
	if total == 0 {
		return neutralRatio
	}
	ratio := float64(matches) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// CareerMatchRatio is the fraction of the student's aspirations that appear
// in (or contain) some career path, whole-phrase substring containment. The
// recommendation assembler reuses it when phrasing reasons.
func CareerMatchRatio(aspirations, careerPaths []string) float64 {
	if len(aspirations) == 0 {
		return neutralRatio
	}

	matches := 0
	for _, aspiration := range aspirations {
		a := strings.ToLower(aspiration)
		for _, path := range careerPaths {
			p := strings.ToLower(path)
			if strings.Contains(p, a) || strings.Contains(a, p) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(aspirations))
}

// Location-class labels offered by the questionnaire's preferences step.
const (
	locAnywhere      = "Anywhere in India"
	locInternational = "International"
	locMetro         = "Metro Cities (Mumbai, Delhi, Bangalore, etc.)"
	locTier2         = "Tier 2 Cities"
	locSameState     = "Same State"
	locNearbyStates  = "Nearby States"
)

func isLocationPreferred(preferences []string, locationType string) bool {
	if hasPreference(preferences, locAnywhere) {
		return true
	}
	// The catalog is India-only; an international preference never matches.
	if hasPreference(preferences, locInternational) {
		return false
	}
	if locationType == "metro" && hasPreference(preferences, locMetro) {
		return true
	}
	if locationType == "tier2" && hasPreference(preferences, locTier2) {
		return true
	}
	// Without the student's home state these remain coarse yes-signals.
	if hasPreference(preferences, locSameState) || hasPreference(preferences, locNearbyStates) {
		return true
	}
	return len(preferences) == 0
}

func hasPreference(preferences []string, label string) bool {
	for _, p := range preferences {
		if p == label {
			return true
		}
	}
	return false
}

// IsBudgetCompatible reports whether an annual fee falls inside the range
// bound to the student's selected budget bracket. Unknown brackets (including
// the empty string) do not constrain.
func IsBudgetCompatible(budgetRange string, annualFees int) bool {
	bracket, ok := budgetBrackets[budgetRange]
	if !ok {
		return true
	}
	fee := float64(annualFees)
	return fee >= bracket[0] && fee <= bracket[1]
}

func splitKeywords(phrases []string) []string {
	var keywords []string
	for _, phrase := range phrases {
		for _, token := range keywordSplit.Split(strings.ToLower(phrase), -1) {
			if token != "" {
				keywords = append(keywords, token)
			}
		}
	}
	return keywords
}
