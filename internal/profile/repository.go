package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository defines persistence operations for profiles.
type Repository interface {
	GetByUser(ctx context.Context, userID int64) (*Profile, error)
	Upsert(ctx context.Context, p Profile) (*Profile, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const profileColumns = `id, user_id, company_name, logo_url, email, website, phone, mobile, whatsapp, address, gstin, quotation_prefix, created_at, updated_at`

func (r *repository) GetByUser(ctx context.Context, userID int64) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	p, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Upsert inserts the profile or replaces the existing row for the
// user. A user has at most one profile.
func (r *repository) Upsert(ctx context.Context, p Profile) (*Profile, error) {
	query := `
		INSERT INTO profiles (user_id, company_name, logo_url, email, website, phone, mobile, whatsapp, address, gstin, quotation_prefix, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			logo_url = EXCLUDED.logo_url,
			email = EXCLUDED.email,
			website = EXCLUDED.website,
			phone = EXCLUDED.phone,
			mobile = EXCLUDED.mobile,
			whatsapp = EXCLUDED.whatsapp,
			address = EXCLUDED.address,
			gstin = EXCLUDED.gstin,
			quotation_prefix = EXCLUDED.quotation_prefix,
			updated_at = NOW()
		RETURNING ` + profileColumns

	return scanProfile(r.pool.QueryRow(ctx, query,
		p.UserID, p.CompanyName,
		textOrNil(p.LogoURL), textOrNil(p.Email), textOrNil(p.Website),
		textOrNil(p.Phone), textOrNil(p.Mobile), textOrNil(p.WhatsApp),
		textOrNil(p.Address), textOrNil(p.GSTIN),
		p.QuotationPrefix,
	))
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	var logoURL, email, website, phone, mobile, whatsapp, address, gstin pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &logoURL, &email, &website,
		&phone, &mobile, &whatsapp, &address, &gstin, &p.QuotationPrefix,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if logoURL.Valid {
		p.LogoURL = &logoURL.String
	}
	if email.Valid {
		p.Email = &email.String
	}
	if website.Valid {
		p.Website = &website.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if mobile.Valid {
		p.Mobile = &mobile.String
	}
	if whatsapp.Valid {
		p.WhatsApp = &whatsapp.String
	}
	if address.Valid {
		p.Address = &address.String
	}
	if gstin.Valid {
		p.GSTIN = &gstin.String
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}

	return &p, nil
}

func textOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
