package recommend

import (
	"fmt"
	"strings"

	"github.com/aura/counsel/internal/eligibility"
	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/ranking"
	"github.com/aura/counsel/internal/types"
)

// assemble builds the full recommendation card for one scored pair.
func assemble(profile types.StudentProfile, u types.University, c types.Course, score float64) types.Recommendation {
	return types.Recommendation{
		University:               u,
		Course:                   c,
		MatchScore:               score,
		Reasoning:                buildReasoning(profile, u, c, score),
		Pros:                     buildPros(u),
		Cons:                     buildCons(profile, u),
		EligibilityStatus:        eligibilityStatus(profile, u),
		ScholarshipOpportunities: scholarshipOpportunities(profile, u),
	}
}

// buildReasoning phrases why the pair scored the way it did. The first line
// grades the overall score; the rest fire on individual strong signals.
func buildReasoning(profile types.StudentProfile, u types.University, c types.Course, score float64) []string {
	reasons := make([]string, 0, 5)

	switch {
	case score > 0.8:
		reasons = append(reasons, "Excellent match based on your profile and preferences")
	case score > 0.6:
		reasons = append(reasons, "Good match with strong alignment to your goals")
	default:
		reasons = append(reasons, "Decent match with some alignment to your interests")
	}

	if ranking.CareerMatchRatio(profile.CareerAspirations, c.CareerPaths) > 0.7 {
		reasons = append(reasons, "Strong alignment with your career aspirations")
	}
	if u.NIRFRank > 0 && u.NIRFRank <= 10 {
		reasons = append(reasons, "Top-ranked institution with excellent reputation")
	}
	if parsing.ParseScore(u.PlacementRate) > 90 {
		reasons = append(reasons, "Outstanding placement record with high success rate")
	}
	if ranking.IsBudgetCompatible(profile.BudgetRange, parsing.ParseAnnualFees(u.AnnualFees)) {
		reasons = append(reasons, "Fits within your specified budget range")
	}

	return reasons
}

func buildPros(u types.University) []string {
	pros := make([]string, 0, 5)

	if u.NIRFRank > 0 && u.NIRFRank <= 20 {
		pros = append(pros, "Highly ranked institution")
	}
	if rate := parsing.ParseScore(u.PlacementRate); rate > 85 {
		pros = append(pros, fmt.Sprintf("%d%% placement rate", rate))
	}
	if u.Type == "government" {
		pros = append(pros, "Government institution with lower fees")
	}

	pros = append(pros, "Average package: "+u.AveragePackage)

	if len(u.Facilities) > 0 {
		top := u.Facilities
		if len(top) > 2 {
			top = top[:2]
		}
		pros = append(pros, "Excellent facilities: "+strings.Join(top, ", "))
	}

	return pros
}

func buildCons(profile types.StudentProfile, u types.University) []string {
	cons := make([]string, 0, 4)

	if !ranking.IsBudgetCompatible(profile.BudgetRange, parsing.ParseAnnualFees(u.AnnualFees)) {
		cons = append(cons, "May exceed your budget range")
	}
	if parsing.ParseScore(u.Min12thScoreRequired) > 80 {
		cons = append(cons, "High academic requirements for admission")
	}
	if len(u.ExamsAccepted) > 0 {
		cons = append(cons, "Requires entrance exam: "+u.ExamsAccepted[0])
	}
	if u.LocationType == "tier3" {
		cons = append(cons, "Located in smaller city with limited industry exposure")
	}

	return cons
}

// eligibilityStatus bands the student's raw percentage string against the
// university's minimum. An unparseable percentage yields borderline, never an
// exclusion.
func eligibilityStatus(profile types.StudentProfile, u types.University) types.EligibilityStatus {
	percentage := parsing.ParsePercentage(profile.Percentage)
	minRequired := float64(parsing.ParseScore(u.Min12thScoreRequired))
	return eligibility.Band(percentage, minRequired)
}

// scholarshipOpportunities lists the aid programs worth mentioning for this
// pairing. The state scholarship is universal and always closes the list.
func scholarshipOpportunities(profile types.StudentProfile, u types.University) []string {
	scholarships := make([]string, 0, 4)

	if u.Type == "government" {
		scholarships = append(scholarships, "Government Merit Scholarship")
	}
	if parsing.ParsePercentage(profile.Percentage) > 90 {
		scholarships = append(scholarships, "Merit-based Scholarship")
	}
	if profile.BudgetRange == "under-1lakh" || profile.BudgetRange == "1-3lakh" {
		scholarships = append(scholarships, "Need-based Financial Aid")
	}

	scholarships = append(scholarships, "State Government Scholarship")
	return scholarships
}
