package hsn

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository defines persistence operations for HSN codes.
type Repository interface {
	List(ctx context.Context, userID int64) ([]Code, error)
	Create(ctx context.Context, userID int64, code string) (*Code, error)
	DeleteByCode(ctx context.Context, userID int64, code string) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) List(ctx context.Context, userID int64) ([]Code, error) {
	const query = `
		SELECT id, user_id, code, created_at
		FROM hsn_codes
		WHERE user_id = $1
		ORDER BY code
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []Code
	for rows.Next() {
		var c Code
		if err := rows.Scan(&c.ID, &c.UserID, &c.Code, &c.CreatedAt); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

func (r *repository) Create(ctx context.Context, userID int64, code string) (*Code, error) {
	const query = `
		INSERT INTO hsn_codes (user_id, code, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, user_id, code, created_at
	`
	var c Code
	err := r.db.QueryRow(ctx, query, userID, code).Scan(&c.ID, &c.UserID, &c.Code, &c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, fmt.Errorf("hsn code %s: %w", code, shared.ErrDuplicate)
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) DeleteByCode(ctx context.Context, userID int64, code string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM hsn_codes WHERE user_id = $1 AND code = $2`, userID, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
