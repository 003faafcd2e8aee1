package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_generator_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_generator_app/internal/models"
	"github.com/SscSPs/invoice_generator_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// sortColumns maps API sort fields to columns.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "last_updated_at",
	"date":       "document_date",
	"number":     "number",
	"grandTotal": "grand_total",
}

const documentColumns = `document_id, kind, number, status, document_date, client_name, client_company,
	project_name, grand_total, idempotency_key, body, created_at, created_by, last_updated_at, last_updated_by`

// likeEscaper escapes ILIKE wildcards so the query matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (domain.Document, error) {
	var m models.DocumentRow
	err := row.Scan(
		&m.DocumentID,
		&m.Kind,
		&m.Number,
		&m.Status,
		&m.DocumentDate,
		&m.ClientName,
		&m.ClientCompany,
		&m.ProjectName,
		&m.GrandTotal,
		&m.IdempotencyKey,
		&m.Body,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Document{}, err
	}
	return mapping.FromDocumentRow(m)
}

func (r *PgxDocumentRepository) findOne(ctx context.Context, where string, args ...any) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE ` + where
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "failed to find document")
	}
	return &doc, nil
}

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "failed to query documents")
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	return r.findOne(ctx, `document_id = $1 AND created_by = $2`, documentID, ownerID)
}

func (r *PgxDocumentRepository) FindPublicDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	return r.findOne(ctx, `document_id = $1`, documentID)
}

func (r *PgxDocumentRepository) FindDocuments(ctx context.Context, query domain.DocumentQuery) ([]domain.Document, int64, error) {
	query = query.Normalize()
	where := []string{"created_by = $1"}
	args := []any{query.OwnerID}
	if query.Kind != "" {
		args = append(args, string(query.Kind))
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if query.Status != "" {
		args = append(args, string(query.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	filter := strings.Join(where, " AND ")

	field, desc := query.SortField()
	column, ok := sortColumns[field]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	var (
		docs  []domain.Document
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pageArgs := append(append([]any{}, args...), query.Limit, query.Offset())
		sql := fmt.Sprintf(`SELECT %s FROM documents WHERE %s ORDER BY %s %s, document_id LIMIT $%d OFFSET $%d`,
			documentColumns, filter, column, direction, len(args)+1, len(args)+2)
		var err error
		docs, err = r.queryDocuments(gctx, sql, pageArgs...)
		return err
	})
	g.Go(func() error {
		err := r.Pool.QueryRow(gctx, `SELECT COUNT(*) FROM documents WHERE `+filter, args...).Scan(&total)
		return translate(err, "failed to count documents")
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *PgxDocumentRepository) SearchDocuments(ctx context.Context, ownerID, query string, limit int) ([]domain.Document, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	sql := `SELECT ` + documentColumns + ` FROM documents
		WHERE created_by = $1
		  AND (number ILIKE $2 OR client_name ILIKE $2 OR client_company ILIKE $2 OR project_name ILIKE $2)
		ORDER BY document_date DESC, created_at ASC
		LIMIT $3`
	return r.queryDocuments(ctx, sql, ownerID, pattern, limit)
}

func (r *PgxDocumentRepository) DocumentStats(ctx context.Context, ownerID string) (domain.DocumentStats, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM documents
		WHERE created_by = $1
		GROUP BY status`, ownerID)
	if err != nil {
		return domain.DocumentStats{}, translate(err, "failed to query statistics")
	}
	defer rows.Close()

	stats := domain.DocumentStats{ByStatus: make(map[domain.DocumentStatus]domain.StatusSummary)}
	for rows.Next() {
		var (
			status string
			count  int
			total  decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &total); err != nil {
			return domain.DocumentStats{}, fmt.Errorf("error scanning statistics row: %w", err)
		}
		s := domain.DocumentStatus(status)
		stats.ByStatus[s] = domain.StatusSummary{Count: count, Total: total}
		stats.TotalDocuments += count
		if s == domain.StatusPaid {
			stats.TotalRevenue = total
		}
	}
	if err := rows.Err(); err != nil {
		return domain.DocumentStats{}, fmt.Errorf("error iterating statistics rows: %w", err)
	}
	return stats, nil
}

func (r *PgxDocumentRepository) FindDocumentByIdempotencyKey(ctx context.Context, ownerID, key string) (*domain.Document, error) {
	if key == "" {
		return nil, apperrors.ErrNotFound
	}
	return r.findOne(ctx, `created_by = $1 AND idempotency_key = $2`, ownerID, key)
}

func (r *PgxDocumentRepository) DocumentNumbers(ctx context.Context, ownerID string, kind domain.DocumentKind) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT number FROM documents WHERE created_by = $1 AND kind = $2`, ownerID, string(kind))
	if err != nil {
		return nil, translate(err, "failed to list document numbers")
	}
	numbers, err := pgx.CollectRows(rows, pgx.RowTo[string])
	return numbers, translate(err, "failed to list document numbers")
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m, err := mapping.ToDocumentRow(doc)
	if err != nil {
		return err
	}
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.Pool.Exec(ctx, query,
		m.DocumentID, m.Kind, m.Number, m.Status, m.DocumentDate,
		m.ClientName, m.ClientCompany, m.ProjectName, m.GrandTotal,
		m.IdempotencyKey, m.Body,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translate(err, "failed to save document")
}

func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	m, err := mapping.ToDocumentRow(doc)
	if err != nil {
		return err
	}
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE documents
		SET kind = $1, number = $2, status = $3, document_date = $4, client_name = $5,
		    client_company = $6, project_name = $7, grand_total = $8, body = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE document_id = $12 AND created_by = $13`,
		m.Kind, m.Number, m.Status, m.DocumentDate, m.ClientName,
		m.ClientCompany, m.ProjectName, m.GrandTotal, m.Body,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.DocumentID, m.CreatedBy,
	)
	if err != nil {
		return translate(err, "failed to update document")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, ownerID, documentID string, from, to domain.DocumentStatus, updatedAt time.Time) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil && err == nil {
			err = rbErr
		}
	}()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM documents WHERE document_id = $1 AND created_by = $2 FOR UPDATE`,
		documentID, ownerID).Scan(&current)
	if err != nil {
		return translate(err, "failed to lock document")
	}
	if domain.DocumentStatus(current) != from {
		return apperrors.ErrConflict
	}
	if _, err = tx.Exec(ctx, `UPDATE documents SET status = $1, last_updated_at = $2, last_updated_by = $3 WHERE document_id = $4`,
		string(to), updatedAt, ownerID, documentID); err != nil {
		return translate(err, "failed to update document status")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, ownerID, documentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1 AND created_by = $2`, documentID, ownerID)
	if err != nil {
		return translate(err, "failed to delete document")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
