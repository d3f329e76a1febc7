package types

import "encoding/json"

// EligibilityStatus is the banded outcome of comparing a student's 12th
// percentage against a university's minimum requirement.
type EligibilityStatus string

// Eligibility bands. Borderline covers the -5/+10 tolerance window around the
// university's minimum percentage.
const (
	StatusEligible    EligibilityStatus = "eligible"
	StatusBorderline  EligibilityStatus = "borderline"
	StatusNotEligible EligibilityStatus = "not-eligible"
)

// Recommendation is one ranked (university, course) pair produced by the
// local engine. Recomputed per request, never persisted.
type Recommendation struct {
	University               University        `json:"university"`
	Course                   Course            `json:"course"`
	MatchScore               float64           `json:"matchScore"`
	Reasoning                []string          `json:"reasoning"`
	Pros                     []string          `json:"pros"`
	Cons                     []string          `json:"cons"`
	EligibilityStatus        EligibilityStatus `json:"eligibilityStatus"`
	ScholarshipOpportunities []string          `json:"scholarshipOpportunities"`
}

// NoResultsAnalysis is the structured body returned when the candidate pool
// is empty. Suggestions is always the fixed four-item list from the matching
// package; an empty pool is a distinct outcome, not an error.
type NoResultsAnalysis struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// RecommendationResponse is the success envelope for the server path. The
// sub-reports come back verbatim from the analysis oracle and are forwarded
// untouched.
type RecommendationResponse struct {
	Recommendations     json.RawMessage    `json:"recommendations"`
	AdmissionAnalysis   json.RawMessage    `json:"admission_analysis,omitempty"`
	CollegeComparison   json.RawMessage    `json:"college_comparison,omitempty"`
	ApplicationStrategy json.RawMessage    `json:"application_strategy,omitempty"`
	FinancialAnalysis   json.RawMessage    `json:"financial_analysis,omitempty"`
	NextSteps           json.RawMessage    `json:"next_steps,omitempty"`
	Analysis            *NoResultsAnalysis `json:"analysis,omitempty"`
}
