package recommend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/aura/counsel/internal/analysis"
	"github.com/aura/counsel/internal/catalog"
	"github.com/aura/counsel/internal/matching"
	"github.com/aura/counsel/internal/types"
)

// Oracle produces the counselling report for a filtered candidate pool.
// Satisfied by *analysis.Analyzer; tests substitute fakes.
type Oracle interface {
	Analyze(ctx context.Context, req *types.RecommendationRequest, pool []types.University) (*analysis.Report, error)
}

// Service wires the catalog, the candidate filter, and the oracle into the
// request-scoped recommendation flow.
type Service struct {
	catalog  *catalog.Store
	oracle   Oracle
	validate *validator.Validate
}

// NewService creates a recommendation service over the given catalog and
// oracle.
func NewService(store *catalog.Store, oracle Oracle) *Service {
	return &Service{
		catalog:  store,
		oracle:   oracle,
		validate: validator.New(),
	}
}

// Recommend runs the server path: validate the request, filter the catalog
// down to the candidate pool, and either return the fixed no-results analysis
// (empty pool) or the oracle's full report. An empty pool is a successful
// response, not an error.
func (s *Service) Recommend(ctx context.Context, req *types.RecommendationRequest) (*types.RecommendationResponse, error) {
	if req == nil {
		return nil, &RequestError{Message: "request body is required"}
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, &RequestError{Message: "academic profile, preferences, and constraints are all required", Cause: err}
	}

	universities, err := s.catalog.Universities(ctx)
	if err != nil {
		return nil, err
	}

	pool := matching.FilterCandidates(universities, *req.AcademicProfile, *req.Constraints)
	if len(pool) == 0 {
		return &types.RecommendationResponse{
			Recommendations: json.RawMessage("[]"),
			Analysis: &types.NoResultsAnalysis{
				Message:     matching.NoResultsMessage,
				Suggestions: matching.NoResultsSuggestions(),
			},
		}, nil
	}

	report, err := s.oracle.Analyze(ctx, req, pool)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return &types.RecommendationResponse{
		Recommendations:     report.Recommendations,
		AdmissionAnalysis:   report.AdmissionAnalysis,
		CollegeComparison:   report.CollegeComparison,
		ApplicationStrategy: report.ApplicationStrategy,
		FinancialAnalysis:   report.FinancialAnalysis,
		NextSteps:           report.NextSteps,
	}, nil
}

// RecommendLocal runs the deterministic engine over the full catalog. No
// oracle involved; results are reproducible for a given profile and dataset.
func (s *Service) RecommendLocal(ctx context.Context, profile types.StudentProfile) ([]types.Recommendation, error) {
	universities, err := s.catalog.Universities(ctx)
	if err != nil {
		return nil, err
	}
	return GenerateLocal(universities, profile), nil
}
