// Package server provides the HTTP REST API for the counselling service.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aura/counsel/internal/server/middleware"
	"github.com/aura/counsel/internal/types"
)

// handleRecommend runs the server recommendation path: candidate filter plus
// the analysis oracle. When the caller is authenticated, the questionnaire and
// response are recorded as a submission.
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if !s.hasOracle {
		s.errorResponse(w, http.StatusServiceUnavailable, "analysis provider is not configured")
		return
	}

	var req types.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.recommender.Recommend(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.recordSubmission(r, &req, resp)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRecommendLocal runs the deterministic engine. No oracle, no auth, no
// persistence; the same profile against the same dataset gives the same list.
func (s *Server) handleRecommendLocal(w http.ResponseWriter, r *http.Request) {
	var profile types.StudentProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recs, err := s.recommender.RecommendLocal(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// handleStates serves the distinct sorted state list for the location picker.
func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	states, err := s.catalog.States(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"states": states})
}

// handleUniversities serves the per-university metadata rows for the
// comparison view.
func (s *Server) handleUniversities(w http.ResponseWriter, r *http.Request) {
	rows, err := s.catalog.Metadata(r.Context())
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"universities": rows})
}

// handleUniversityPage serves a preview of a university's official page.
func (s *Server) handleUniversityPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	u, err := s.catalog.FindByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if u == nil {
		s.errorResponse(w, http.StatusNotFound, "university not found: "+id)
		return
	}
	if u.OfficialPage == "" {
		s.errorResponse(w, http.StatusNotFound, "university has no official page on record")
		return
	}

	preview, err := s.previews.Fetch(r.Context(), u.OfficialPage)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, preview)
}

// handleScholarships serves the eligible scholarships for the profile in the
// query string, most relevant first.
func (s *Server) handleScholarships(w http.ResponseWriter, r *http.Request) {
	profile := profileFromQuery(r)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"scholarships": s.finder.FindScholarships(profile),
	})
}

// handleExams serves the relevant entrance exams for the profile in the query
// string, most relevant first.
func (s *Server) handleExams(w http.ResponseWriter, r *http.Request) {
	profile := profileFromQuery(r)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"entrance_exams": s.finder.FindExams(profile),
	})
}

// handleListSubmissions serves the authenticated user's saved questionnaire
// runs, newest first.
func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	subs, err := s.submissions.ListSubmissionsByUser(r.Context(), userID, 0)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"submissions": subs})
}

// handleDeleteSubmission removes one of the authenticated user's submissions.
func (s *Server) handleDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid submission id")
		return
	}

	if err := s.submissions.DeleteSubmission(r.Context(), id, userID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Submission deleted"})
}

// handleUpdatePassword changes the authenticated user's password.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// recordSubmission persists the questionnaire and response when the request
// carries a valid bearer token. Best effort: persistence failures are logged,
// never surfaced to the caller.
func (s *Server) recordSubmission(r *http.Request, req *types.RecommendationRequest, resp *types.RecommendationResponse) {
	if s.submissions == nil {
		return
	}

	userID, ok := s.bearerUserID(r)
	if !ok {
		return
	}

	profileJSON, err := json.Marshal(req)
	if err != nil {
		return
	}
	responseJSON, err := json.Marshal(resp)
	if err != nil {
		return
	}

	if _, err := s.submissions.SaveSubmission(r.Context(), userID, profileJSON, responseJSON); err != nil {
		log.Printf("failed to record submission for user %s: %v", userID, err)
	}
}

// bearerUserID extracts the user ID from an optional Authorization header.
func (s *Server) bearerUserID(r *http.Request) (uuid.UUID, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, false
	}
	claims, err := s.jwtService.ValidateToken(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// profileFromQuery builds a student profile from the finder query parameters.
// Repeated career and interest parameters accumulate.
func profileFromQuery(r *http.Request) types.StudentProfile {
	q := r.URL.Query()
	return types.StudentProfile{
		EducationLevel:    q.Get("education_level"),
		Stream:            q.Get("stream"),
		Percentage:        q.Get("percentage"),
		BudgetRange:       q.Get("budget_range"),
		CareerAspirations: q["career"],
		Interests:         q["interest"],
	}
}
