package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oncograph/paperqa/internal/core/domain"
)

// QuestionLog is the audit trail of answered questions.
type QuestionLog struct {
	db *sql.DB
}

func NewQuestionLog(db *sql.DB) *QuestionLog {
	return &QuestionLog{db: db}
}

func (l *QuestionLog) Insert(ctx context.Context, record domain.QuestionRecord) error {
	_, err := l.db.ExecContext(ctx, `
INSERT INTO questions (id, question, intent, row_count, top_score, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`,
		record.ID, record.Question, string(record.Intent),
		record.RowCount, record.TopScore, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert question record: %w", err)
	}
	return nil
}

func (l *QuestionLog) ListRecent(ctx context.Context, limit int) ([]domain.QuestionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
SELECT id, question, intent, row_count, top_score, created_at
FROM questions
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query question records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.QuestionRecord, 0, limit)
	for rows.Next() {
		var record domain.QuestionRecord
		var intent string
		err := rows.Scan(&record.ID, &record.Question, &intent, &record.RowCount, &record.TopScore, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan question record: %w", err)
		}
		record.Intent = domain.Intent(intent)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question records: %w", err)
	}
	return records, nil
}
