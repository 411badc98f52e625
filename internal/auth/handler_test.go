package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quotedesk/quotedesk/internal/shared"
	_ "github.com/quotedesk/quotedesk/testing"
)

type stubRepo struct {
	users    map[string]*User
	sessions map[string]int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: map[string]*User{}, sessions: map[string]int64{}}
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (s *stubRepo) CreateUser(_ context.Context, email, hash, first, last string) (int64, error) {
	if _, exists := s.users[email]; exists {
		return 0, fmt.Errorf("email %s: %w", email, shared.ErrDuplicate)
	}
	id := int64(len(s.users) + 1)
	s.users[email] = &User{ID: id, Email: email, PasswordHash: hash, FirstName: first, LastName: last, IsActive: true}
	return id, nil
}

func (s *stubRepo) CreateSession(_ context.Context, id string, userID int64, _ time.Time, _, _ string) error {
	s.sessions[id] = userID
	return nil
}

func (s *stubRepo) DeleteSession(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *stubRepo, *shared.SessionManager) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := shared.NewSessionManager(client, "quotedesk_session", "test-secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	repo := newStubRepo()
	handler := NewHandler(NewService(repo), sessions, csrf, slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))
	return handler, repo, sessions
}

func withSession(t *testing.T, sessions *shared.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	sess, err := sessions.Load(r.Context(), r)
	require.NoError(t, err)
	return r.WithContext(shared.ContextWithSession(r.Context(), sess))
}

func TestLoginSuccess(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["jo@example.com"] = &User{ID: 7, Email: "jo@example.com", PasswordHash: string(hash), IsActive: true}

	body, _ := json.Marshal(map[string]string{"email": "jo@example.com", "password": "correct-horse"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(7), got["id"])

	sess := shared.SessionFromContext(req.Context())
	assert.Equal(t, "7", sess.User())
}

func TestLoginWrongPassword(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["jo@example.com"] = &User{ID: 7, Email: "jo@example.com", PasswordHash: string(hash), IsActive: true}

	body, _ := json.Marshal(map[string]string{"email": "jo@example.com", "password": "wrong-password"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	handler, _, sessions := newTestHandler(t)

	body, _ := json.Marshal(map[string]string{"email": "ghost@example.com", "password": "irrelevant1"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginInactiveAccount(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["jo@example.com"] = &User{ID: 7, Email: "jo@example.com", PasswordHash: string(hash), IsActive: false}

	body, _ := json.Marshal(map[string]string{"email": "jo@example.com", "password": "correct-horse"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupCreatesUser(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)

	body, _ := json.Marshal(map[string]string{
		"email":     "new@example.com",
		"password":  "long-enough",
		"firstName": "New",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.signup(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	stored, ok := repo.users["new@example.com"]
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("long-enough")))
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)
	repo.users["taken@example.com"] = &User{ID: 3, Email: "taken@example.com", IsActive: true}

	body, _ := json.Marshal(map[string]string{
		"email":     "taken@example.com",
		"password":  "long-enough",
		"firstName": "New",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.signup(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int64(3), repo.users["taken@example.com"].ID)

	sess := shared.SessionFromContext(req.Context())
	assert.Empty(t, sess.User())
}

func TestSignupRejectsShortPassword(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)

	body, _ := json.Marshal(map[string]string{
		"email":     "new@example.com",
		"password":  "short",
		"firstName": "New",
	})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req = withSession(t, sessions, req)
	rec := httptest.NewRecorder()

	handler.signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.users)
}

func TestLogoutClearsSession(t *testing.T) {
	handler, repo, sessions := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req = withSession(t, sessions, req)
	sess := shared.SessionFromContext(req.Context())
	sess.SetUser("7")
	repo.sessions[sess.ID] = 7
	rec := httptest.NewRecorder()

	handler.logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.sessions)
}
