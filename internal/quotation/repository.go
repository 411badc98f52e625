package quotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quotedesk/quotedesk/internal/platform/db"
	"github.com/quotedesk/quotedesk/internal/shared"
)

// Repository defines persistence operations for quotations.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, userID, id int64) (*Quotation, error)
	List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error)
	Create(ctx context.Context, q Quotation) (int64, error)
	Update(ctx context.Context, q Quotation) error
	UpdateStatus(ctx context.Context, userID, id int64, status Status) error
	Delete(ctx context.Context, userID, id int64) error
	NextSequence(ctx context.Context, userID int64, fiscalYear string) (int64, error)
	Stats(ctx context.Context, userID int64) (*Stats, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const quotationColumns = `id, user_id, quotation_number, quote_date, company_id, grand_total, terms_and_conditions, referenced_by, created_by, status, created_at, updated_at`

func (r *repository) Get(ctx context.Context, userID, id int64) (*Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1 AND user_id = $2`
	q, err := scanQuotation(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.fetchLines(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Products = lines
	return q, nil
}

func (r *repository) List(ctx context.Context, req ListQuotationsRequest) ([]Quotation, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	conditions = append(conditions, fmt.Sprintf("q.user_id = $%d", argPos))
	args = append(args, req.UserID)
	argPos++

	if req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("q.status = $%d", argPos))
		args = append(args, string(req.Status))
		argPos++
	}

	if req.CompanyID > 0 {
		conditions = append(conditions, fmt.Sprintf("q.company_id = $%d", argPos))
		args = append(args, req.CompanyID)
		argPos++
	}

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		conditions = append(conditions, fmt.Sprintf(`(q.quotation_number ILIKE $%d OR EXISTS (
			SELECT 1 FROM companies c
			WHERE c.id = q.company_id AND (c.name ILIKE $%d OR c.email ILIKE $%d OR c.location ILIKE $%d)
		))`, argPos, argPos, argPos, argPos))
		args = append(args, pattern)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quotations q %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT q.id, q.user_id, q.quotation_number, q.quote_date, q.company_id, q.grand_total,
		       q.terms_and_conditions, q.referenced_by, q.created_by, q.status, q.created_at, q.updated_at
		FROM quotations q
		%s
		ORDER BY q.created_at DESC, q.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotations []Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, err
		}
		quotations = append(quotations, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range quotations {
		lines, err := r.fetchLines(ctx, quotations[i].ID)
		if err != nil {
			return nil, 0, err
		}
		quotations[i].Products = lines
	}

	return quotations, total, nil
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	const query = `
		INSERT INTO quotations (user_id, quotation_number, quote_date, company_id, grand_total,
		                        terms_and_conditions, referenced_by, created_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		q.UserID, q.Number, q.Date, q.CompanyID, q.GrandTotal,
		q.TermsAndConditions, q.ReferencedBy, q.CreatedBy, string(q.Status),
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, fmt.Errorf("quotation number %s: %w", q.Number, shared.ErrDuplicate)
		}
		return 0, err
	}

	if err := r.insertLines(ctx, id, q.Products); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, q Quotation) error {
	const query = `
		UPDATE quotations
		SET quote_date = $1, company_id = $2, grand_total = $3, terms_and_conditions = $4,
		    referenced_by = $5, created_by = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`
	tag, err := r.db.Exec(ctx, query,
		q.Date, q.CompanyID, q.GrandTotal, q.TermsAndConditions,
		q.ReferencedBy, q.CreatedBy, q.ID, q.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}

	// Lines are replaced wholesale so reorders and deletions stick.
	if _, err := r.db.Exec(ctx, `DELETE FROM quotation_products WHERE quotation_id = $1`, q.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, q.ID, q.Products)
}

func (r *repository) UpdateStatus(ctx context.Context, userID, id int64, status Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE quotations SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		string(status), id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextSequence reserves the next document sequence for the user and
// fiscal year. The upsert makes the reservation atomic, so concurrent
// creations never observe the same value.
func (r *repository) NextSequence(ctx context.Context, userID int64, fiscalYear string) (int64, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotation_sequences (user_id, fiscal_year, seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, fiscal_year)
		DO UPDATE SET seq = quotation_sequences.seq + 1
		RETURNING seq
	`, userID, fiscalYear).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *repository) Stats(ctx context.Context, userID int64) (*Stats, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'Pending'),
		       COUNT(*) FILTER (WHERE status = 'Complete'),
		       COUNT(*) FILTER (WHERE status = 'Rejected')
		FROM quotations
		WHERE user_id = $1
	`
	var s Stats
	if err := r.db.QueryRow(ctx, query, userID).Scan(&s.Total, &s.Pending, &s.Completed, &s.Rejected); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) fetchLines(ctx context.Context, quotationID int64) ([]Product, error) {
	const query = `
		SELECT id, sr_no, name, model, hsn, quantity, quantity_type, price, total
		FROM quotation_products
		WHERE quotation_id = $1
		ORDER BY sr_no
	`
	rows, err := r.db.Query(ctx, query, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SrNo, &p.Name, &p.Model, &p.HSN, &p.Quantity, &p.QuantityType, &p.Price, &p.Total); err != nil {
			return nil, err
		}
		lines = append(lines, p)
	}
	return lines, rows.Err()
}

func (r *repository) insertLines(ctx context.Context, quotationID int64, lines []Product) error {
	const query = `
		INSERT INTO quotation_products (quotation_id, sr_no, name, model, hsn, quantity, quantity_type, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, p := range lines {
		if _, err := r.db.Exec(ctx, query,
			quotationID, p.SrNo, p.Name, p.Model, p.HSN, p.Quantity, p.QuantityType, p.Price, p.Total,
		); err != nil {
			return err
		}
	}
	return nil
}

func scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	var status string
	var quoteDate pgtype.Date
	var terms, referencedBy, createdBy pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&q.ID, &q.UserID, &q.Number, &quoteDate, &q.CompanyID, &q.GrandTotal,
		&terms, &referencedBy, &createdBy, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Status = Status(status)
	if quoteDate.Valid {
		q.Date = quoteDate.Time
	}
	if terms.Valid {
		q.TermsAndConditions = terms.String
	}
	if referencedBy.Valid {
		q.ReferencedBy = referencedBy.String
	}
	if createdBy.Valid {
		q.CreatedBy = createdBy.String
	}
	if createdAt.Valid {
		q.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		q.UpdatedAt = updatedAt.Time
	}

	return &q, nil
}
