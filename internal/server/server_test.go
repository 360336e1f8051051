package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/uploads"
)

// mockStore is an in-memory Store for handler tests.
type mockStore struct {
	mu      sync.Mutex
	resumes map[uuid.UUID]*types.Resume
	users   map[uuid.UUID]*db.User
	err     error // when set, every call fails with it
}

func newMockStore() *mockStore {
	return &mockStore{
		resumes: make(map[uuid.UUID]*types.Resume),
		users:   make(map[uuid.UUID]*db.User),
	}
}

func (m *mockStore) CreateResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	stored := *r
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	stored.Normalize()
	m.resumes[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *mockStore) GetResume(ctx context.Context, id, userID uuid.UUID) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	out := *r
	return &out, nil
}

func (m *mockStore) ListResumes(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []types.Resume{}
	for _, r := range m.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mockStore) UpdateResume(ctx context.Context, r *types.Resume) (*types.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	existing, ok := m.resumes[r.ID]
	if !ok || existing.UserID != r.UserID {
		return nil, nil
	}
	stored := *r
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()
	stored.Normalize()
	m.resumes[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *mockStore) SetResumeImages(ctx context.Context, id, userID uuid.UUID, thumbnailLink, profilePreviewURL string) (*types.Resume, error) {
	r, err := m.GetResume(ctx, id, userID)
	if err != nil || r == nil {
		return r, err
	}
	if thumbnailLink != "" {
		r.ThumbnailLink = thumbnailLink
	}
	if profilePreviewURL != "" {
		r.ProfileInfo.ProfilePreviewURL = profilePreviewURL
	}
	return m.UpdateResume(ctx, r)
}

func (m *mockStore) DeleteResume(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	r, ok := m.resumes[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(m.resumes, id)
	return true, nil
}

func (m *mockStore) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return uuid.Nil, m.err
	}
	id := uuid.New()
	now := time.Now()
	m.users[id] = &db.User{
		ID: id, Name: name, Email: email, PasswordHash: passwordHash,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (m *mockStore) GetUser(ctx context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *mockStore) GetUserByEmail(ctx context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// fakeExporter returns a canned result or error.
type fakeExporter struct {
	result *export.Result
	err    error
}

func (f *fakeExporter) Export(ctx context.Context, resume *types.Resume) (*export.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &export.Result{Mode: export.ModePDF, Filename: "resume.pdf", PDF: []byte("%PDF")}, nil
}

// newTestServer wires a Server over the mock store with a throwaway upload
// dir and a fake exporter.
func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()

	uploadStore, err := uploads.NewStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userService := NewUserService(store, passwordConfig)

	s := &Server{
		db:          store,
		uploads:     uploadStore,
		exporter:    &fakeExporter{},
		jwtService:  jwtService,
		userService: userService,
	}
	s.authHandler = NewAuthHandler(userService, jwtService)
	return s
}

// newTestUser registers a user directly against the store and returns its ID
// with a valid bearer token.
func newTestUser(t *testing.T, s *Server, store *mockStore) (uuid.UUID, string) {
	t.Helper()
	id, err := store.CreateUser(context.Background(), "Test User", fmt.Sprintf("%s@example.com", uuid.NewString()), "hash")
	require.NoError(t, err)
	token, err := s.jwtService.GenerateToken(id)
	require.NoError(t, err)
	return id, token
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func decodeResume(t *testing.T, rec *httptest.ResponseRecorder) types.Resume {
	t.Helper()
	var r types.Resume
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&r))
	return r
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, newMockStore())

	rec := doJSON(t, s, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_ScopedToConfiguredOrigin(t *testing.T) {
	s := newTestServer(t, newMockStore())
	s.frontendOrigin = "http://localhost:5173"
	handler := s.withCORS(s.routes())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	// Preflight short-circuits.
	req = httptest.NewRequest(http.MethodOptions, "/api/resume", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_FailsClosedWithoutConfiguredOrigin(t *testing.T) {
	s := newTestServer(t, newMockStore())
	s.frontendOrigin = ""

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.withCORS(s.routes()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// No configured front end: no cross-origin grant, not a wildcard.
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
