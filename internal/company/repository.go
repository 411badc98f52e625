package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository defines persistence operations for companies.
type Repository interface {
	Get(ctx context.Context, userID, id int64) (*Company, error)
	List(ctx context.Context, req ListCompaniesRequest) ([]Company, int, error)
	Create(ctx context.Context, c Company) (int64, error)
	Update(ctx context.Context, userID, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, userID, id int64) error
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

const companyColumns = `id, user_id, name, address, location, email, phone, contact_person, gstin, remarks, created_at, updated_at`

func (r *repository) Get(ctx context.Context, userID, id int64) (*Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1 AND user_id = $2`, companyColumns)
	c, err := scanCompany(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context, req ListCompaniesRequest) ([]Company, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
	args = append(args, req.UserID)
	argPos++

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR contact_person ILIKE $%d OR gstin ILIKE $%d)", argPos, argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM companies %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM companies
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, companyColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, *c)
	}

	return companies, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Company) (int64, error) {
	const query = `
		INSERT INTO companies (user_id, name, address, location, email, phone, contact_person, gstin, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		c.UserID, c.Name,
		textOrNil(c.Address), textOrNil(c.Location), textOrNil(c.Email),
		textOrNil(c.Phone), textOrNil(c.ContactPerson), textOrNil(c.GSTIN),
		textOrNil(c.Remarks),
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, userID, id int64, updates map[string]interface{}) error {
	query := "UPDATE companies SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "address", "location", "email", "phone", "contact_person", "gstin", "remarks"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	if len(args) == 0 {
		return nil
	}

	query += fmt.Sprintf(" WHERE id = $%d AND user_id = $%d", argPos, argPos+1)
	args = append(args, id, userID)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	var address, location, email, phone, contact, gstin, remarks pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &address, &location, &email, &phone,
		&contact, &gstin, &remarks, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		c.Address = &address.String
	}
	if location.Valid {
		c.Location = &location.String
	}
	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.Phone = &phone.String
	}
	if contact.Valid {
		c.ContactPerson = &contact.String
	}
	if gstin.Valid {
		c.GSTIN = &gstin.String
	}
	if remarks.Valid {
		c.Remarks = &remarks.String
	}
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		c.UpdatedAt = updatedAt.Time
	}

	return &c, nil
}

func textOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
