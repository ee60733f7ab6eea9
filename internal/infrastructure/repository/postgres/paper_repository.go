package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oncograph/paperqa/internal/core/domain"
)

type PaperRepository struct {
	db *sql.DB
}

func NewPaperRepository(db *sql.DB) *PaperRepository {
	return &PaperRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *PaperRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/loader startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS papers (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_papers_status ON papers(status);

CREATE TABLE IF NOT EXISTS questions (
	id TEXT PRIMARY KEY,
	question TEXT NOT NULL,
	intent TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	top_score DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_questions_created_at ON questions(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *PaperRepository) Create(ctx context.Context, paper *domain.Paper) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO papers (id, filename, mime_type, storage_path, status, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		paper.ID, paper.Filename, paper.MimeType, paper.StoragePath,
		string(paper.Status), paper.Error, paper.CreatedAt, paper.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert paper: %w", err)
	}
	return nil
}

func (r *PaperRepository) GetByID(ctx context.Context, id string) (*domain.Paper, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, error_message, created_at, updated_at
FROM papers
WHERE id = $1
`, id)

	var paper domain.Paper
	var status string

	err := row.Scan(
		&paper.ID, &paper.Filename, &paper.MimeType, &paper.StoragePath,
		&status, &paper.Error, &paper.CreatedAt, &paper.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrPaperNotFound, "get paper", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan paper: %w", err)
	}

	paper.Status = domain.PaperStatus(status)
	return &paper, nil
}

func (r *PaperRepository) UpdateStatus(ctx context.Context, id string, status domain.PaperStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE papers
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update paper status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update paper status rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrPaperNotFound, "update paper status", fmt.Errorf("id=%s", id))
	}
	return nil
}
