// Package analysis runs the LLM-backed counselling oracle: it assembles the
// student's profile and the filtered candidate pool into a structured prompt,
// asks the model for a full admissions report, and parses the response back
// into typed sections.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aura/counsel/internal/llm"
	"github.com/aura/counsel/internal/prompts"
	"github.com/aura/counsel/internal/schemas"
	"github.com/aura/counsel/internal/types"
)

// Report is the oracle's parsed response. Recommendations is required and
// non-empty; the remaining sections are forwarded to callers verbatim.
type Report struct {
	Recommendations     json.RawMessage `json:"recommendations"`
	AdmissionAnalysis   json.RawMessage `json:"admission_analysis"`
	CollegeComparison   json.RawMessage `json:"college_comparison"`
	ApplicationStrategy json.RawMessage `json:"application_strategy"`
	FinancialAnalysis   json.RawMessage `json:"financial_analysis"`
	NextSteps           json.RawMessage `json:"next_steps"`
}

// Analyzer generates counselling reports for a candidate pool.
type Analyzer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewAnalyzer creates an analyzer backed by the given LLM client. The
// standard tier is the default; counselling reports are long enough that the
// lite tier truncates them.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{
		client: client,
		tier:   llm.TierStandard,
	}
}

// WithTier overrides the model tier used for report generation.
func (a *Analyzer) WithTier(tier llm.ModelTier) *Analyzer {
	a.tier = tier
	return a
}

// Analyze produces a counselling report for the given request over the
// filtered candidate pool. The pool must be non-empty; empty pools are
// handled upstream with a no-results response, never sent to the model.
func (a *Analyzer) Analyze(ctx context.Context, req *types.RecommendationRequest, pool []types.University) (*Report, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("candidate pool is empty")
	}

	prompt, err := a.buildPrompt(req, pool)
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	raw, err := a.client.GenerateJSON(ctx, prompt, a.tier)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	return parseReport(raw)
}

// buildPrompt renders the counselling prompt with the student's sections and
// the candidate pool serialized as JSON.
func (a *Analyzer) buildPrompt(req *types.RecommendationRequest, pool []types.University) (string, error) {
	template, err := prompts.Get("analysis.json", "college-analysis")
	if err != nil {
		return "", err
	}

	academic, err := json.Marshal(req.AcademicProfile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal academic profile: %w", err)
	}
	preferences, err := json.Marshal(req.Preferences)
	if err != nil {
		return "", fmt.Errorf("failed to marshal preferences: %w", err)
	}
	constraints, err := json.Marshal(req.Constraints)
	if err != nil {
		return "", fmt.Errorf("failed to marshal constraints: %w", err)
	}
	universities, err := json.MarshalIndent(pool, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal candidate pool: %w", err)
	}

	return prompts.Format(template, map[string]string{
		"AcademicProfile": string(academic),
		"Preferences":     string(preferences),
		"Constraints":     string(constraints),
		"Universities":    string(universities),
	}), nil
}

// parseReport cleans, validates, and decodes the model's raw response.
func parseReport(raw string) (*Report, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateBytes(schemas.OracleAnalysis, []byte(cleaned)); err != nil {
		return nil, &ProtocolError{Message: "response failed schema validation", Cause: err}
	}

	var report Report
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, &ProtocolError{Message: "response is not valid JSON", Cause: err}
	}

	var recs []json.RawMessage
	if err := json.Unmarshal(report.Recommendations, &recs); err != nil {
		return nil, &ProtocolError{Message: "recommendations section is not an array", Cause: err}
	}
	if len(recs) == 0 {
		return nil, &ProtocolError{Message: "model returned no recommendations"}
	}

	return &report, nil
}
