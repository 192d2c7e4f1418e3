package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-screener/internal/config"
	"github.com/jonathan/talent-screener/internal/db"
	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/types"
)

// fakeDatabase is an in-memory Database for handler tests. It mirrors the
// store semantics the handlers rely on: (nil, nil) reads for missing rows,
// duplicate detection on live (candidate, job) pairs, and version checks
// on transitions.
type fakeDatabase struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*db.UserRecord
	resumes    map[uuid.UUID]*types.ResumeProfile
	jobs       map[uuid.UUID]*types.JobPosting
	apps       map[uuid.UUID]*types.Application
	interviews map[uuid.UUID]*types.Interview
	feedback   map[uuid.UUID]*types.InterviewFeedback
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{
		users:      make(map[uuid.UUID]*db.UserRecord),
		resumes:    make(map[uuid.UUID]*types.ResumeProfile),
		jobs:       make(map[uuid.UUID]*types.JobPosting),
		apps:       make(map[uuid.UUID]*types.Application),
		interviews: make(map[uuid.UUID]*types.Interview),
		feedback:   make(map[uuid.UUID]*types.InterviewFeedback),
	}
}

func (f *fakeDatabase) CreateUser(_ context.Context, name, email string, role types.ActorRole, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return uuid.Nil, &db.ErrEmailTaken{Email: email}
		}
	}
	id := uuid.New()
	f.users[id] = &db.UserRecord{
		ID:           id,
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	return id, nil
}

func (f *fakeDatabase) GetUser(_ context.Context, id uuid.UUID) (*db.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeDatabase) GetUserByEmail(_ context.Context, email string) (*db.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDatabase) SaveResumeProfile(_ context.Context, profile *types.ResumeProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	copied := *profile
	f.resumes[profile.ID] = &copied
	return nil
}

func (f *fakeDatabase) GetResumeProfile(_ context.Context, id uuid.UUID) (*types.ResumeProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.resumes[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeDatabase) DeleteResumeProfile(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resumes[id]; !ok {
		return fmt.Errorf("resume profile not found: %s", id)
	}
	delete(f.resumes, id)
	return nil
}

func (f *fakeDatabase) GetResumeProfileByCandidate(_ context.Context, candidateID uuid.UUID) (*types.ResumeProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.resumes {
		if p.CandidateID == candidateID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDatabase) CreateJobPosting(_ context.Context, job *types.JobPosting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeDatabase) GetJobPosting(_ context.Context, id uuid.UUID) (*types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jobs[id]; ok {
		copied := *j
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeDatabase) ListJobPostings(_ context.Context, filters db.JobFilters) ([]types.JobPosting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.JobPosting
	for _, j := range f.jobs {
		if filters.Status != "" && j.Status != filters.Status {
			continue
		}
		if filters.ExperienceLevel != "" && j.ExperienceLevel != filters.ExperienceLevel {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeDatabase) UpdateJobStatus(_ context.Context, id uuid.UUID, status types.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job posting not found: %s", id)
	}
	j.Status = status
	return nil
}

func (f *fakeDatabase) RecordJobView(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if j, ok := f.jobs[id]; ok {
		j.ViewsCount++
	}
	return nil
}

func (f *fakeDatabase) CreateApplication(_ context.Context, app *types.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.CandidateID == app.CandidateID && existing.JobID == app.JobID &&
			existing.Status != types.StatusWithdrawn {
			return &lifecycle.DuplicateApplicationError{CandidateID: app.CandidateID, JobID: app.JobID}
		}
	}
	copied := *app
	f.apps[app.ID] = &copied
	if job, ok := f.jobs[app.JobID]; ok {
		job.ApplicationsCount++
	}
	return nil
}

func (f *fakeDatabase) GetApplication(_ context.Context, id uuid.UUID) (*types.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if app, ok := f.apps[id]; ok {
		copied := *app
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeDatabase) ApplyTransition(_ context.Context, app *types.Application, jobDelta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.apps[app.ID]
	if !ok {
		return &lifecycle.NotFoundError{Resource: "application", ID: app.ID}
	}
	if stored.Version != app.Version {
		return &lifecycle.ConcurrentUpdateError{ApplicationID: app.ID}
	}
	copied := *app
	copied.Version++
	copied.Notes = stored.Notes
	f.apps[app.ID] = &copied
	if job, ok := f.jobs[app.JobID]; ok && jobDelta != 0 {
		job.ApplicationsCount += jobDelta
		if job.ApplicationsCount < 0 {
			job.ApplicationsCount = 0
		}
	}
	return nil
}

func (f *fakeDatabase) AddNote(_ context.Context, appID uuid.UUID, note types.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[appID]
	if !ok {
		return &lifecycle.NotFoundError{Resource: "application", ID: appID}
	}
	app.Notes = append(app.Notes, note)
	return nil
}

func (f *fakeDatabase) ListApplications(_ context.Context, filters db.ApplicationFilters) ([]types.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Application
	for _, app := range f.apps {
		if filters.JobID != uuid.Nil && app.JobID != filters.JobID {
			continue
		}
		if filters.CandidateID != uuid.Nil && app.CandidateID != filters.CandidateID {
			continue
		}
		if filters.Status != "" && app.Status != filters.Status {
			continue
		}
		out = append(out, *app)
	}
	return out, nil
}

func (f *fakeDatabase) CreateInterview(_ context.Context, interview *types.Interview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}
	copied := *interview
	f.interviews[interview.ID] = &copied
	return nil
}

func (f *fakeDatabase) GetInterview(_ context.Context, id uuid.UUID) (*types.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if iv, ok := f.interviews[id]; ok {
		copied := *iv
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeDatabase) SaveInterviewFeedback(_ context.Context, feedback *types.InterviewFeedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *feedback
	f.feedback[feedback.InterviewID] = &copied
	return nil
}

// testServer bundles a server with the pieces tests need to mint tokens
// and seed data directly.
type testServer struct {
	server *Server
	db     *fakeDatabase
	jwt    *JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	database := newFakeDatabase()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	jwtConfig := &config.JWTConfig{Secret: "test-secret-for-handlers", ExpirationHours: 1}

	s := newServer(database, passwordConfig, jwtConfig, Config{Port: 0})
	return &testServer{server: s, db: database, jwt: NewJWTService(jwtConfig)}
}

// do performs a request against the server's full handler chain. A non-nil
// actor is attached as a bearer token.
func (ts *testServer) do(t *testing.T, method, path string, body any, actor *types.Actor) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if actor != nil {
		token, err := ts.jwt.GenerateToken(actor.ID, actor.Role)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.server.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func (ts *testServer) seedCandidate() types.Actor {
	return types.Actor{ID: uuid.New(), Role: types.RoleCandidate}
}

func (ts *testServer) seedHR() types.Actor {
	return types.Actor{ID: uuid.New(), Role: types.RoleHR}
}

func (ts *testServer) seedResume(candidateID uuid.UUID) *types.ResumeProfile {
	profile := &types.ResumeProfile{
		ID:          uuid.New(),
		CandidateID: candidateID,
		Skills:      []string{"Go", "PostgreSQL", "Docker"},
		Experience: []types.ExperienceEntry{
			{Company: "Initech", Position: "Backend Engineer", DurationYears: 4},
		},
		Education:       []types.EducationEntry{{Institution: "State University", Degree: "B.S. Computer Science"}},
		ExperienceLevel: types.LevelMid,
	}
	ts.db.resumes[profile.ID] = profile
	return profile
}

func (ts *testServer) seedJob(status types.JobStatus) *types.JobPosting {
	job := &types.JobPosting{
		ID:              uuid.New(),
		Title:           "Backend Engineer",
		Company:         "Globex",
		EmploymentType:  types.EmploymentFullTime,
		Description:     "Build and operate Go services on PostgreSQL.",
		Requirements:    []string{"Go", "PostgreSQL"},
		ExperienceLevel: types.LevelMid,
		Status:          status,
	}
	ts.db.jobs[job.ID] = job
	return job
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/jobs", nil, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
