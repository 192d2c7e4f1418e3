package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-screener/internal/types"
)

func submitApplication(t *testing.T, ts *testServer, candidate types.Actor) types.Application {
	t.Helper()
	resume := ts.seedResume(candidate.ID)
	job := ts.seedJob(types.JobActive)

	rec := ts.do(t, http.MethodPost, "/jobs/"+job.ID.String()+"/applications",
		types.SubmitApplicationRequest{ResumeID: resume.ID.String()}, &candidate)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[types.Application](t, rec)
}

func TestSubmitApplication(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()

	app := submitApplication(t, ts, candidate)

	assert.Equal(t, types.StatusSubmitted, app.Status)
	assert.Equal(t, candidate.ID, app.CandidateID)
	assert.Equal(t, 1, app.Version)
	assert.Greater(t, app.Score, 50, "overlapping skills should score above neutral")
	require.Len(t, app.Timeline, 1)
	assert.Equal(t, types.StatusSubmitted, app.Timeline[0].Status)

	job := ts.db.jobs[app.JobID]
	assert.Equal(t, 1, job.ApplicationsCount)
}

func TestSubmitApplication_HRRefused(t *testing.T) {
	ts := newTestServer(t)
	hr := ts.seedHR()
	resume := ts.seedResume(uuid.New())
	job := ts.seedJob(types.JobActive)

	rec := ts.do(t, http.MethodPost, "/jobs/"+job.ID.String()+"/applications",
		types.SubmitApplicationRequest{ResumeID: resume.ID.String()}, &hr)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSubmitApplication_ClosedJob(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	resume := ts.seedResume(candidate.ID)
	job := ts.seedJob(types.JobClosed)

	rec := ts.do(t, http.MethodPost, "/jobs/"+job.ID.String()+"/applications",
		types.SubmitApplicationRequest{ResumeID: resume.ID.String()}, &candidate)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmitApplication_Duplicate(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/jobs/"+app.JobID.String()+"/applications",
		types.SubmitApplicationRequest{ResumeID: app.ResumeID.String()}, &candidate)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransitionApplication(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	hr := ts.seedHR()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/transition",
		types.TransitionRequest{Status: "screening"}, &hr)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[types.Application](t, rec)
	assert.Equal(t, types.StatusScreening, updated.Status)
	assert.Equal(t, 2, updated.Version)
	require.Len(t, updated.Timeline, 2)
	assert.Equal(t, types.StatusScreening, updated.Timeline[1].Status)
}

func TestTransitionApplication_SkipRefused(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	hr := ts.seedHR()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/transition",
		types.TransitionRequest{Status: "hired"}, &hr)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTransitionApplication_CandidateRefused(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/transition",
		types.TransitionRequest{Status: "screening"}, &candidate)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWithdrawApplication(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/withdraw",
		types.TransitionRequest{Reason: "Accepted another offer"}, &candidate)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeBody[types.Application](t, rec)
	assert.Equal(t, types.StatusWithdrawn, updated.Status)

	job := ts.db.jobs[app.JobID]
	assert.Equal(t, 0, job.ApplicationsCount, "withdrawal should release the counter slot")
}

func TestWithdrawApplication_OtherCandidateRefused(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	other := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/withdraw", nil, &other)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWithdrawApplication_AfterInterviewRefused(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	hr := ts.seedHR()
	app := submitApplication(t, ts, candidate)

	for _, status := range []string{"screening", "shortlisted"} {
		rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/transition",
			types.TransitionRequest{Status: status}, &hr)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/interview",
		types.ScheduleInterviewRequest{ScheduledAt: time.Now().Add(48 * time.Hour), Mode: "video"}, &hr)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Still pre-interview, so withdrawal works from interview_scheduled.
	rec = ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/withdraw", nil, &candidate)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Once interviewed, withdrawal is no longer permitted.
	other := ts.seedCandidate()
	otherApp := submitApplication(t, ts, other)
	for _, status := range []string{"screening", "shortlisted"} {
		rec := ts.do(t, http.MethodPost, "/applications/"+otherApp.ID.String()+"/transition",
			types.TransitionRequest{Status: status}, &hr)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = ts.do(t, http.MethodPost, "/applications/"+otherApp.ID.String()+"/interview",
		types.ScheduleInterviewRequest{ScheduledAt: time.Now().Add(48 * time.Hour), Mode: "video"}, &hr)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPost, "/applications/"+otherApp.ID.String()+"/transition",
		types.TransitionRequest{Status: "interviewed"}, &hr)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/applications/"+otherApp.ID.String()+"/withdraw", nil, &other)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetApplication_CandidateCannotSeeNotes(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	hr := ts.seedHR()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/notes",
		types.AddNoteRequest{Text: "Strong backend background"}, &hr)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/applications/"+app.ID.String(), nil, &candidate)
	require.Equal(t, http.StatusOK, rec.Code)
	asCandidate := decodeBody[types.Application](t, rec)
	assert.Empty(t, asCandidate.Notes)

	rec = ts.do(t, http.MethodGet, "/applications/"+app.ID.String(), nil, &hr)
	require.Equal(t, http.StatusOK, rec.Code)
	asHR := decodeBody[types.Application](t, rec)
	require.Len(t, asHR.Notes, 1)
	assert.Equal(t, "Strong backend background", asHR.Notes[0].Text)
}

func TestGetApplication_OtherCandidateRefused(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	other := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodGet, "/applications/"+app.ID.String(), nil, &other)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetApplication_NotFound(t *testing.T) {
	ts := newTestServer(t)
	hr := ts.seedHR()

	rec := ts.do(t, http.MethodGet, "/applications/"+uuid.NewString(), nil, &hr)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddNote_CandidateRefused(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/notes",
		types.AddNoteRequest{Text: "note"}, &candidate)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestInterviewFlow_HireVerdict(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	hr := ts.seedHR()
	app := submitApplication(t, ts, candidate)

	for _, status := range []string{"screening", "shortlisted"} {
		rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/transition",
			types.TransitionRequest{Status: status}, &hr)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/interview",
		types.ScheduleInterviewRequest{ScheduledAt: time.Now().Add(72 * time.Hour), Mode: "onsite", Location: "HQ"}, &hr)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scheduled := decodeBody[types.Application](t, rec)
	assert.Equal(t, types.StatusInterviewScheduled, scheduled.Status)
	require.NotNil(t, scheduled.InterviewID)

	interview := ts.db.interviews[*scheduled.InterviewID]
	require.NotNil(t, interview)
	assert.Equal(t, app.ID, interview.ApplicationID)
	assert.Equal(t, hr.ID, interview.InterviewerID)

	rec = ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/feedback",
		types.InterviewFeedbackRequest{Recommendation: "hire", Comments: "Excellent systems knowledge"}, &hr)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	final := decodeBody[types.Application](t, rec)
	assert.Equal(t, types.StatusHired, final.Status)

	saved := ts.db.feedback[*scheduled.InterviewID]
	require.NotNil(t, saved)
	assert.Equal(t, types.FeedbackHire, saved.Recommendation)
}

func TestInterviewFeedback_NoInterviewScheduled(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	hr := ts.seedHR()
	app := submitApplication(t, ts, candidate)

	rec := ts.do(t, http.MethodPost, "/applications/"+app.ID.String()+"/feedback",
		types.InterviewFeedbackRequest{Recommendation: "hire"}, &hr)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListJobApplications(t *testing.T) {
	ts := newTestServer(t)
	hr := ts.seedHR()
	job := ts.seedJob(types.JobActive)

	for range 2 {
		candidate := ts.seedCandidate()
		resume := ts.seedResume(candidate.ID)
		rec := ts.do(t, http.MethodPost, "/jobs/"+job.ID.String()+"/applications",
			types.SubmitApplicationRequest{ResumeID: resume.ID.String()}, &candidate)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := ts.do(t, http.MethodGet, "/jobs/"+job.ID.String()+"/applications", nil, &hr)
	require.Equal(t, http.StatusOK, rec.Code)
	apps := decodeBody[[]types.Application](t, rec)
	assert.Len(t, apps, 2)

	// Candidates cannot browse a posting's applicant pool.
	candidate := ts.seedCandidate()
	rec = ts.do(t, http.MethodGet, "/jobs/"+job.ID.String()+"/applications", nil, &candidate)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListMyApplications(t *testing.T) {
	ts := newTestServer(t)
	candidate := ts.seedCandidate()
	other := ts.seedCandidate()
	app := submitApplication(t, ts, candidate)
	submitApplication(t, ts, other)

	rec := ts.do(t, http.MethodGet, "/applications", nil, &candidate)
	require.Equal(t, http.StatusOK, rec.Code)

	apps := decodeBody[[]types.Application](t, rec)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
}
