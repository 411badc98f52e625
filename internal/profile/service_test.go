package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/shared"
	_ "github.com/quotedesk/quotedesk/testing"
)

type mockRepository struct {
	byUser map[int64]*Profile
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{byUser: map[int64]*Profile{}, nextID: 1}
}

func (m *mockRepository) GetByUser(_ context.Context, userID int64) (*Profile, error) {
	p, ok := m.byUser[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockRepository) Upsert(_ context.Context, p Profile) (*Profile, error) {
	if existing, ok := m.byUser[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = m.nextID
		m.nextID++
	}
	m.byUser[p.UserID] = &p
	clone := p
	return &clone, nil
}

func TestSaveCreatesProfile(t *testing.T) {
	svc := NewService(newMockRepository())

	p, err := svc.Save(context.Background(), 1, SaveProfileRequest{
		CompanyName:     "  Sharma Engineering Works  ",
		QuotationPrefix: "SEW",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sharma Engineering Works", p.CompanyName)
	assert.Equal(t, "SEW", p.QuotationPrefix)
}

func TestSaveReplacesExistingProfile(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	first, err := svc.Save(context.Background(), 1, SaveProfileRequest{
		CompanyName:     "Sharma Engineering Works",
		QuotationPrefix: "SEW",
	})
	require.NoError(t, err)

	second, err := svc.Save(context.Background(), 1, SaveProfileRequest{
		CompanyName:     "Sharma Industries",
		QuotationPrefix: "SI",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Sharma Industries", got.CompanyName)
	assert.Equal(t, "SI", got.QuotationPrefix)
}

func TestSaveRejectsBlankPrefix(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Save(context.Background(), 1, SaveProfileRequest{
		CompanyName:     "Sharma Engineering Works",
		QuotationPrefix: "   ",
	})
	assert.Error(t, err)
}

func TestGetMissingProfile(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
