package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/action-agent/internal/models"
)

type SuiteStore struct {
	db QueryInterceptor
}

func NewSuiteStore(db QueryInterceptor) *SuiteStore {
	return &SuiteStore{db: db}
}

func (s *SuiteStore) Insert(ctx context.Context, suite models.Suite) (int64, error) {
	query, args, err := sq.Insert("suites").
		Columns("run_id", "name", "package_name", "start_time").
		Values(suite.RunID, suite.Name, suite.PackageName, suite.StartTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	return id, err
}

func (s *SuiteStore) End(ctx context.Context, id int64, at time.Time) error {
	return s.update(ctx, id, sq.Eq{"end_time": at})
}

// Update changes the non-empty fields of u.
func (s *SuiteStore) Update(ctx context.Context, id int64, u models.UpdateSuite) error {
	set := sq.Eq{}
	if u.SuiteName != "" {
		set["name"] = u.SuiteName
	}
	if u.UserNote != "" {
		set["user_note"] = u.UserNote
	}
	if len(set) == 0 {
		return nil
	}
	return s.update(ctx, id, set)
}

func (s *SuiteStore) update(ctx context.Context, id int64, set sq.Eq) error {
	query, args, err := sq.Update("suites").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// ListByRun returns the suites of a run in start order.
func (s *SuiteStore) ListByRun(ctx context.Context, runID int64) ([]models.Suite, error) {
	query, args, err := sq.Select("id", "run_id", "name", "package_name", "user_note", "start_time", "end_time").
		From("suites").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suites := []models.Suite{}
	for rows.Next() {
		var (
			suite models.Suite
			end   sql.NullTime
		)
		if err := rows.Scan(&suite.ID, &suite.RunID, &suite.Name, &suite.PackageName, &suite.UserNote, &suite.StartTime, &end); err != nil {
			return nil, err
		}
		suite.EndTime = nullTime(end)
		suites = append(suites, suite)
	}
	return suites, rows.Err()
}
