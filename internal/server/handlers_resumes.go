package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/db"
	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/schemas"
	"github.com/jonathan/talent-screener/internal/scoring"
	"github.com/jonathan/talent-screener/internal/server/middleware"
	"github.com/jonathan/talent-screener/internal/types"
)

// ResumeScoreResponse reports the standalone résumé quality score.
type ResumeScoreResponse struct {
	ResumeID uuid.UUID `json:"resume_id"`
	Score    int       `json:"score"`
}

// handleIngestResume parses raw résumé text into a profile and stores it.
// Candidates ingest their own résumé; the profile replaces any previous one
// only when re-imported under the same ID, otherwise a new profile is
// created.
func (s *Server) handleIngestResume(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if actor.Role != types.RoleCandidate {
		s.errorResponse(w, http.StatusForbidden, "Only candidates can ingest resumes")
		return
	}

	var req types.IngestResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	profile, err := s.parser.Parse(r.Context(), req.Text)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	profile.CandidateID = actor.ID

	if err := s.database.SaveResumeProfile(r.Context(), profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save resume: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, profile)
}

// handleImportResume accepts an already-structured profile document,
// validates it against the résumé profile schema, and stores it.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if actor.Role != types.RoleCandidate {
		s.errorResponse(w, http.StatusForbidden, "Only candidates can import resumes")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateResumeProfile(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile JSON: "+err.Error())
		return
	}
	profile.CandidateID = actor.ID

	if err := s.database.SaveResumeProfile(r.Context(), &profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save resume: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, profile)
}

// handleGetResume returns a stored profile. Candidates may only read their
// own; HR may read any.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	actor, profile, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	if actor.Role == types.RoleCandidate && profile.CandidateID != actor.ID {
		s.errorResponse(w, http.StatusForbidden, "Not your resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleDeleteResume removes a stored profile. Only the owning candidate
// may delete; applications that referenced the profile keep their scores.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	actor, profile, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	if actor.Role != types.RoleCandidate || profile.CandidateID != actor.ID {
		s.errorResponse(w, http.StatusForbidden, "Only the owner can delete a resume")
		return
	}

	if err := s.database.DeleteResumeProfile(r.Context(), profile.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete resume: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleResumeScore returns the standalone quality score for a profile.
func (s *Server) handleResumeScore(w http.ResponseWriter, r *http.Request) {
	actor, profile, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	if actor.Role == types.RoleCandidate && profile.CandidateID != actor.ID {
		s.errorResponse(w, http.StatusForbidden, "Not your resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, ResumeScoreResponse{
		ResumeID: profile.ID,
		Score:    scoring.ComputeResumeScore(profile),
	})
}

// handleResumeMatches ranks the profile against all active job postings.
func (s *Server) handleResumeMatches(w http.ResponseWriter, r *http.Request) {
	actor, profile, ok := s.loadResume(w, r)
	if !ok {
		return
	}
	if actor.Role == types.RoleCandidate && profile.CandidateID != actor.ID {
		s.errorResponse(w, http.StatusForbidden, "Not your resume")
		return
	}

	jobs, err := s.database.ListJobPostings(r.Context(), db.JobFilters{Status: types.JobActive})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}

	ranked, err := scoring.MatchAgainstJobs(r.Context(), s.scorer, profile, jobs, 0)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to rank jobs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ranked)
}

// loadResume resolves the {id} path parameter and ownership checks shared
// by the resume handlers. It writes the error response itself on failure.
func (s *Server) loadResume(w http.ResponseWriter, r *http.Request) (types.Actor, *types.ResumeProfile, bool) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return types.Actor{}, nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID format")
		return types.Actor{}, nil, false
	}

	profile, err := s.database.GetResumeProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return types.Actor{}, nil, false
	}
	if profile == nil {
		err := &lifecycle.NotFoundError{Resource: "resume", ID: id}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return types.Actor{}, nil, false
	}

	return actor, profile, true
}
