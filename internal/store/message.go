package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/action-agent/internal/models"
)

type MessageStore struct {
	db QueryInterceptor
}

func NewMessageStore(db QueryInterceptor) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Insert(ctx context.Context, m models.Message) error {
	query, args, err := sq.Insert("messages").
		Columns("run_id", "suite_id", "testcase_id", "level", "message", "thread", "host_name", "ts").
		Values(m.RunID, nullable(m.SuiteID), nullable(m.TestcaseID), m.Level, m.Message, m.Thread, m.HostName, m.Timestamp).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// ListByRun returns the messages of a run in insertion order.
func (s *MessageStore) ListByRun(ctx context.Context, runID int64, opts ...ListOption) ([]models.Message, error) {
	builder := sq.Select("id", "run_id", "suite_id", "testcase_id", "level", "message", "thread", "host_name", "ts").
		From("messages").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("id")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var (
			m          models.Message
			suiteID    sql.NullInt64
			testcaseID sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.RunID, &suiteID, &testcaseID, &m.Level, &m.Message, &m.Thread, &m.HostName, &m.Timestamp); err != nil {
			return nil, err
		}
		m.SuiteID = nullInt(suiteID)
		m.TestcaseID = nullInt(testcaseID)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func nullable(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}
