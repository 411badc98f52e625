package quotation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotedesk/quotedesk/internal/company"
	"github.com/quotedesk/quotedesk/internal/profile"
	"github.com/quotedesk/quotedesk/internal/shared"
	_ "github.com/quotedesk/quotedesk/testing"
)

type mockRepository struct {
	quotations map[int64]*Quotation
	sequences  map[string]int64
	nextID     int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		quotations: map[int64]*Quotation{},
		sequences:  map[string]int64{},
		nextID:     1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(_ context.Context, userID, id int64) (*Quotation, error) {
	q, ok := m.quotations[id]
	if !ok || q.UserID != userID {
		return nil, shared.ErrNotFound
	}
	clone := *q
	clone.Products = append([]Product(nil), q.Products...)
	return &clone, nil
}

func (m *mockRepository) List(_ context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	var out []Quotation
	for _, q := range m.quotations {
		if q.UserID != req.UserID {
			continue
		}
		if req.Status != "" && q.Status != req.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (m *mockRepository) Create(_ context.Context, q Quotation) (int64, error) {
	q.ID = m.nextID
	m.nextID++
	m.quotations[q.ID] = &q
	return q.ID, nil
}

func (m *mockRepository) Update(_ context.Context, q Quotation) error {
	existing, ok := m.quotations[q.ID]
	if !ok || existing.UserID != q.UserID {
		return shared.ErrNotFound
	}
	q.Number = existing.Number
	q.Status = existing.Status
	m.quotations[q.ID] = &q
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, userID, id int64, status Status) error {
	q, ok := m.quotations[id]
	if !ok || q.UserID != userID {
		return shared.ErrNotFound
	}
	q.Status = status
	return nil
}

func (m *mockRepository) Delete(_ context.Context, userID, id int64) error {
	q, ok := m.quotations[id]
	if !ok || q.UserID != userID {
		return shared.ErrNotFound
	}
	delete(m.quotations, id)
	return nil
}

func (m *mockRepository) NextSequence(_ context.Context, userID int64, fiscalYear string) (int64, error) {
	key := fmt.Sprintf("%d#%s", userID, fiscalYear)
	m.sequences[key]++
	return m.sequences[key], nil
}

func (m *mockRepository) Stats(_ context.Context, userID int64) (*Stats, error) {
	var s Stats
	for _, q := range m.quotations {
		if q.UserID != userID {
			continue
		}
		s.Total++
		switch q.Status {
		case StatusPending:
			s.Pending++
		case StatusComplete:
			s.Completed++
		case StatusRejected:
			s.Rejected++
		}
	}
	return &s, nil
}

type stubCompanyRepo struct {
	companies map[int64]*company.Company
}

func (s *stubCompanyRepo) Get(_ context.Context, userID, id int64) (*company.Company, error) {
	c, ok := s.companies[id]
	if !ok || c.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (s *stubCompanyRepo) List(context.Context, company.ListCompaniesRequest) ([]company.Company, int, error) {
	return nil, 0, nil
}

func (s *stubCompanyRepo) Create(_ context.Context, c company.Company) (int64, error) {
	id := int64(len(s.companies) + 1)
	c.ID = id
	s.companies[id] = &c
	return id, nil
}

func (s *stubCompanyRepo) Update(context.Context, int64, int64, map[string]interface{}) error {
	return nil
}

func (s *stubCompanyRepo) Delete(context.Context, int64, int64) error {
	return nil
}

type stubProfileRepo struct {
	profiles map[int64]*profile.Profile
}

func (s *stubProfileRepo) GetByUser(_ context.Context, userID int64) (*profile.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (s *stubProfileRepo) Upsert(_ context.Context, p profile.Profile) (*profile.Profile, error) {
	s.profiles[p.UserID] = &p
	return &p, nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	companyRepo := &stubCompanyRepo{companies: map[int64]*company.Company{
		7: {ID: 7, UserID: 1, Name: "Apex Fabricators"},
	}}
	profileRepo := &stubProfileRepo{profiles: map[int64]*profile.Profile{
		1: {UserID: 1, CompanyName: "Sharma Engineering Works", QuotationPrefix: "SEW"},
	}}

	svc := NewService(repo, companyRepo, profileRepo)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

func createRequest() CreateQuotationRequest {
	return CreateQuotationRequest{
		Date:      time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		CompanyID: 7,
		Products: []ProductInput{
			{Name: "Hydraulic press fitting", Model: "HPF-001", HSN: "8412", Quantity: 2, QuantityType: "Nos", Price: 1250.50},
			{Name: "Mounting kit", Quantity: 1, QuantityType: "Set", Price: 499},
		},
		TermsAndConditions: "Delivery: 4-6 weeks",
		ReferencedBy:       "A. Kulkarni",
		CreatedBy:          "Office",
	}
}

func TestCreateAssignsNumberAndTotals(t *testing.T) {
	svc, _ := newTestService()

	q, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	assert.Equal(t, "SEW/2024-25/01", q.Number)
	assert.Equal(t, StatusPending, q.Status)
	require.Len(t, q.Products, 2)
	assert.Equal(t, 1, q.Products[0].SrNo)
	assert.Equal(t, 2, q.Products[1].SrNo)
	assert.Equal(t, 2*1250.50, q.Products[0].Total)
	assert.Equal(t, 499.0, q.Products[1].Total)
	assert.Equal(t, 2*1250.50+499, q.GrandTotal)
}

func TestCreateNumbersAreSequential(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	assert.Equal(t, "SEW/2024-25/01", first.Number)
	assert.Equal(t, "SEW/2024-25/02", second.Number)
}

func TestCreateUnknownCompany(t *testing.T) {
	svc, _ := newTestService()

	req := createRequest()
	req.CompanyID = 99
	_, err := svc.Create(context.Background(), 1, req)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDuplicate(t *testing.T) {
	svc, _ := newTestService()

	original, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	_, err = svc.UpdateProgress(context.Background(), 1, original.ID, StatusComplete)
	require.NoError(t, err)

	dup, err := svc.Duplicate(context.Background(), 1, original.ID)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, dup.ID)
	assert.NotEqual(t, original.Number, dup.Number)
	assert.Equal(t, "SEW/2024-25/02", dup.Number)
	assert.Equal(t, StatusPending, dup.Status)
	assert.Equal(t, svc.now(), dup.Date)
	assert.Equal(t, original.GrandTotal, dup.GrandTotal)

	require.Len(t, dup.Products, len(original.Products))
	for i := range original.Products {
		assert.Equal(t, original.Products[i].Name, dup.Products[i].Name)
		assert.Equal(t, original.Products[i].Quantity, dup.Products[i].Quantity)
		assert.Equal(t, original.Products[i].Price, dup.Products[i].Price)
	}
}

func TestUpdateRecomputesTotalsAndKeepsNumber(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, created.ID, UpdateQuotationRequest{
		Date:      created.Date,
		CompanyID: created.CompanyID,
		Products: []ProductInput{
			{Name: "Mounting kit", Quantity: 3, QuantityType: "Set", Price: 499},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, created.Number, updated.Number)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, 3*499.0, updated.GrandTotal)
}

func TestUpdateProgressRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	_, err = svc.UpdateProgress(context.Background(), 1, created.ID, Status("Archived"))
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), 1, createRequest())
		require.NoError(t, err)
	}
	q, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)
	_, err = svc.UpdateProgress(context.Background(), 1, q.ID, StatusRejected)
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &Stats{Total: 4, Pending: 3, Rejected: 1}, stats)
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), 1, createRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), 2, created.ID), shared.ErrNotFound)
	assert.NoError(t, svc.Delete(context.Background(), 1, created.ID))
}
