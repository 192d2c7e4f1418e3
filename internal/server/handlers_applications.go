package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/db"
	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/server/middleware"
	"github.com/jonathan/talent-screener/internal/types"
)

// handleSubmitApplication submits the caller's résumé to a job posting.
// Candidates only; HR moves applications, it does not create them.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if actor.Role != types.RoleCandidate {
		s.errorResponse(w, http.StatusForbidden, "Only candidates can apply")
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var req types.SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	resumeID, _ := uuid.Parse(req.ResumeID)

	app, intents, err := s.engine.Submit(r.Context(), actor.ID, jobID, resumeID, actor)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.deliver(intents)

	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListJobApplications lists a posting's applications ranked by score.
// HR only.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	if !s.requireHR(w, r) {
		return
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	filters := db.ApplicationFilters{
		JobID:  jobID,
		Status: types.ApplicationStatus(r.URL.Query().Get("status")),
	}

	apps, err := s.database.ListApplications(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applications: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

// handleListMyApplications lists the caller's own applications.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	apps, err := s.database.ListApplications(r.Context(), db.ApplicationFilters{CandidateID: actor.ID})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applications: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, apps)
}

// handleGetApplication returns one application with its timeline and notes.
// Candidates may only read their own, and never the HR notes.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	actor, app, ok := s.loadApplication(w, r)
	if !ok {
		return
	}
	if actor.Role == types.RoleCandidate {
		if app.CandidateID != actor.ID {
			s.errorResponse(w, http.StatusForbidden, "Not your application")
			return
		}
		app.Notes = nil
	}

	s.jsonResponse(w, http.StatusOK, app)
}

// handleTransition moves an application to a new status. HR only;
// candidates withdraw through their own endpoint.
func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request) {
	actor, app, ok := s.loadApplication(w, r)
	if !ok {
		return
	}
	if actor.Role != types.RoleHR {
		s.errorResponse(w, http.StatusForbidden, "HR role required")
		return
	}

	var req types.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, intents, err := s.engine.Transition(r.Context(), app.ID, types.ApplicationStatus(req.Status), actor, req.Reason)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.deliver(intents)

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleWithdraw withdraws the caller's own application.
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	actor, app, ok := s.loadApplication(w, r)
	if !ok {
		return
	}
	if actor.Role != types.RoleCandidate || app.CandidateID != actor.ID {
		s.errorResponse(w, http.StatusForbidden, "Only the applicant can withdraw")
		return
	}

	var req types.TransitionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	updated, intents, err := s.engine.Transition(r.Context(), app.ID, types.StatusWithdrawn, actor, req.Reason)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.deliver(intents)

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleAddNote attaches an HR note to an application.
func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	actor, app, ok := s.loadApplication(w, r)
	if !ok {
		return
	}
	if actor.Role != types.RoleHR {
		s.errorResponse(w, http.StatusForbidden, "HR role required")
		return
	}

	var req types.AddNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	note, err := s.engine.AddNote(r.Context(), app.ID, req.Text, actor)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, note)
}

// handleScheduleInterview creates an interview record and transitions the
// application to interview_scheduled. HR only.
func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	actor, app, ok := s.loadApplication(w, r)
	if !ok {
		return
	}
	if actor.Role != types.RoleHR {
		s.errorResponse(w, http.StatusForbidden, "HR role required")
		return
	}

	var req types.ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	interview := &types.Interview{
		ApplicationID: app.ID,
		ScheduledAt:   req.ScheduledAt,
		Mode:          types.InterviewMode(req.Mode),
		Location:      req.Location,
		InterviewerID: actor.ID,
	}
	if err := s.database.CreateInterview(r.Context(), interview); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create interview: "+err.Error())
		return
	}

	updated, intents, err := s.engine.ScheduleInterview(r.Context(), app.ID, interview.ID, actor)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.deliver(intents)

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleInterviewFeedback records interview feedback and applies its
// verdict transitions. HR only.
func (s *Server) handleInterviewFeedback(w http.ResponseWriter, r *http.Request) {
	actor, app, ok := s.loadApplication(w, r)
	if !ok {
		return
	}
	if actor.Role != types.RoleHR {
		s.errorResponse(w, http.StatusForbidden, "HR role required")
		return
	}
	if app.InterviewID == nil {
		s.errorResponse(w, http.StatusConflict, "Application has no scheduled interview")
		return
	}

	var req types.InterviewFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	feedback := types.InterviewFeedback{
		InterviewID:    *app.InterviewID,
		Recommendation: types.FeedbackRecommendation(req.Recommendation),
		Comments:       req.Comments,
	}
	if err := s.database.SaveInterviewFeedback(r.Context(), &feedback); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save feedback: "+err.Error())
		return
	}

	updated, intents, err := s.engine.RecordInterviewFeedback(r.Context(), app.ID, feedback, actor)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.deliver(intents)

	s.jsonResponse(w, http.StatusOK, updated)
}

// loadApplication resolves the {id} path parameter to an application,
// writing the error response itself on failure.
func (s *Server) loadApplication(w http.ResponseWriter, r *http.Request) (types.Actor, *types.Application, bool) {
	actor, err := middleware.GetActor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return types.Actor{}, nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID format")
		return types.Actor{}, nil, false
	}

	app, err := s.database.GetApplication(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return types.Actor{}, nil, false
	}
	if app == nil {
		notFound := &lifecycle.NotFoundError{Resource: "application", ID: id}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return types.Actor{}, nil, false
	}

	return actor, app, true
}
