package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/db"
	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/schemas"
	"github.com/jonathan/talent-screener/internal/server/middleware"
	"github.com/jonathan/talent-screener/internal/types"
)

// UpdateJobStatusRequest sets a posting's lifecycle status.
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// handleCreateJob creates a job posting. HR only.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if !s.requireHR(w, r) {
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job := &types.JobPosting{
		Title:           req.Title,
		Company:         req.Company,
		Location:        req.Location,
		EmploymentType:  types.EmploymentType(req.EmploymentType),
		Description:     req.Description,
		Requirements:    req.Requirements,
		ExperienceLevel: types.ExperienceLevel(req.ExperienceLevel),
		Status:          types.JobActive,
		ExpiresAt:       req.ExpiresAt,
	}

	if err := s.database.CreateJobPosting(r.Context(), job); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleImportJob accepts a job posting document from an external feed,
// validates it against the job posting schema, and stores it. HR only.
func (s *Server) handleImportJob(w http.ResponseWriter, r *http.Request) {
	if !s.requireHR(w, r) {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := schemas.ValidateJobPosting(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var job types.JobPosting
	if err := json.Unmarshal(body, &job); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job JSON: "+err.Error())
		return
	}
	job.ID = uuid.Nil // imported documents never choose their own ID

	if err := s.database.CreateJobPosting(r.Context(), &job); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to import job: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists postings, filtered by status and level query params.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filters := db.JobFilters{
		Status:          types.JobStatus(r.URL.Query().Get("status")),
		ExperienceLevel: types.ExperienceLevel(r.URL.Query().Get("level")),
	}

	jobs, err := s.database.ListJobPostings(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob returns one posting and bumps its view counter.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	if err := s.database.RecordJobView(r.Context(), job.ID); err == nil {
		job.ViewsCount++
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJobStatus pauses, closes, or reactivates a posting. HR only.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireHR(w, r) {
		return
	}

	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	var req UpdateJobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	status := types.JobStatus(req.Status)
	if !status.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job status: "+req.Status)
		return
	}

	if err := s.database.UpdateJobStatus(r.Context(), job.ID, status); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status: "+err.Error())
		return
	}
	job.Status = status

	s.jsonResponse(w, http.StatusOK, job)
}

// handleJobMatch scores a résumé against one posting without creating an
// application. The résumé is taken from the resume_id query parameter, or
// defaults to the caller's own profile.
func (s *Server) handleJobMatch(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	var profile *types.ResumeProfile
	if raw := r.URL.Query().Get("resume_id"); raw != "" {
		resumeID, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID format")
			return
		}
		profile, err = s.database.GetResumeProfile(r.Context(), resumeID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	} else {
		profile, err = s.database.GetResumeProfileByCandidate(r.Context(), actor.ID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}
	if profile == nil {
		notFound := &lifecycle.NotFoundError{Resource: "resume"}
		s.errorResponse(w, HTTPStatus(notFound), "resume not found")
		return
	}
	if actor.Role == types.RoleCandidate && profile.CandidateID != actor.ID {
		s.errorResponse(w, http.StatusForbidden, "Not your resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, s.scorer.ScoreMatch(profile, job))
}

// requireHR resolves the actor and refuses non-HR callers.
func (s *Server) requireHR(w http.ResponseWriter, r *http.Request) bool {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if actor.Role != types.RoleHR {
		s.errorResponse(w, http.StatusForbidden, "HR role required")
		return false
	}
	return true
}

// loadJob resolves the {id} path parameter to a posting, writing the error
// response itself on failure.
func (s *Server) loadJob(w http.ResponseWriter, r *http.Request) (*types.JobPosting, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return nil, false
	}

	job, err := s.database.GetJobPosting(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if job == nil {
		notFound := &lifecycle.NotFoundError{Resource: "job", ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return nil, false
	}

	return job, true
}
