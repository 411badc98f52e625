package hsn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/shared"
	_ "github.com/quotedesk/quotedesk/testing"
)

type mockRepository struct {
	codes  []Code
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1}
}

func (m *mockRepository) List(_ context.Context, userID int64) ([]Code, error) {
	var out []Code
	for _, c := range m.codes {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *mockRepository) Create(_ context.Context, userID int64, code string) (*Code, error) {
	for _, c := range m.codes {
		if c.UserID == userID && c.Code == code {
			return nil, fmt.Errorf("hsn code %s: %w", code, shared.ErrDuplicate)
		}
	}
	c := Code{ID: m.nextID, UserID: userID, Code: code, CreatedAt: time.Now()}
	m.nextID++
	m.codes = append(m.codes, c)
	return &c, nil
}

func (m *mockRepository) DeleteByCode(_ context.Context, userID int64, code string) error {
	for i, c := range m.codes {
		if c.UserID == userID && c.Code == code {
			m.codes = append(m.codes[:i], m.codes[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestAddTrimsAndStores(t *testing.T) {
	svc := NewService(newMockRepository())

	c, err := svc.Add(context.Background(), 1, "  8412 ")
	require.NoError(t, err)
	assert.Equal(t, "8412", c.Code)
}

func TestAddRejectsBlankCode(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Add(context.Background(), 1, "   ")
	assert.Error(t, err)
}

func TestAddDuplicateCode(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Add(context.Background(), 1, "8412")
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), 1, "8412")
	assert.ErrorIs(t, err, shared.ErrDuplicate)

	// A different user may hold the same code.
	_, err = svc.Add(context.Background(), 2, "8412")
	assert.NoError(t, err)
}

func TestListSortedByCode(t *testing.T) {
	svc := NewService(newMockRepository())

	for _, code := range []string{"9401", "8412", "8504"} {
		_, err := svc.Add(context.Background(), 1, code)
		require.NoError(t, err)
	}

	codes, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, codes, 3)
	assert.Equal(t, "8412", codes[0].Code)
	assert.Equal(t, "8504", codes[1].Code)
	assert.Equal(t, "9401", codes[2].Code)
}

func TestListEmptyCatalog(t *testing.T) {
	svc := NewService(newMockRepository())

	codes, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, codes)
	assert.NotNil(t, codes)
}

func TestDeleteUnknownCode(t *testing.T) {
	svc := NewService(newMockRepository())

	err := svc.Delete(context.Background(), 1, "8412")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func newTestHandler() (*Handler, *mockRepository) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	return NewHandler(NewService(repo), logger), repo
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	sess := &shared.Session{}
	sess.SetUser("1")
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestAddHandlerDuplicateConflicts(t *testing.T) {
	handler, repo := newTestHandler()
	_, err := repo.Create(context.Background(), 1, "8412")
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]string{"code": "8412"})
	rec := httptest.NewRecorder()
	handler.add(rec, authedRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddHandlerBlankCode(t *testing.T) {
	handler, _ := newTestHandler()

	body, _ := json.Marshal(map[string]string{"code": "   "})
	rec := httptest.NewRecorder()
	handler.add(rec, authedRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
