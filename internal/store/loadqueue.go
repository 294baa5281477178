package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// LoadQueueStore persists load queues and their checkpoints.
type LoadQueueStore struct {
	db QueryInterceptor
}

func NewLoadQueueStore(db QueryInterceptor) *LoadQueueStore {
	return &LoadQueueStore{db: db}
}

func (s *LoadQueueStore) Insert(ctx context.Context, testcaseID int64, q models.StartLoadQueue, at time.Time) (int64, error) {
	query, args, err := sq.Insert("load_queues").
		Columns("testcase_id", "name", "host_name", "thread_count", "result", "start_time").
		Values(testcaseID, q.Name, q.HostName, q.ThreadCount, int(models.ResultRunning), at).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	return id, err
}

func (s *LoadQueueStore) End(ctx context.Context, id int64, result models.TestResult, at time.Time) error {
	query, args, err := sq.Update("load_queues").
		Set("result", int(result)).
		Set("end_time", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// ListByRun returns the load queues started by the testcases of a run.
func (s *LoadQueueStore) ListByRun(ctx context.Context, runID int64) ([]models.LoadQueue, error) {
	query, args, err := sq.Select(
		"q.id", "q.testcase_id", "q.name", "q.host_name", "q.thread_count", "q.result", "q.start_time", "q.end_time",
	).From("load_queues q").
		Join("testcases t ON t.id = q.testcase_id").
		Join("suites s ON s.id = t.suite_id").
		Where(sq.Eq{"s.run_id": runID}).
		OrderBy("q.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queues := []models.LoadQueue{}
	for rows.Next() {
		var (
			q      models.LoadQueue
			result int
			end    sql.NullTime
		)
		if err := rows.Scan(&q.ID, &q.TestcaseID, &q.Name, &q.HostName, &q.ThreadCount, &result, &q.StartTime, &end); err != nil {
			return nil, err
		}
		q.Result = models.TestResult(result)
		q.EndTime = nullTime(end)
		queues = append(queues, q)
	}
	return queues, rows.Err()
}

// StartCheckpoint opens a checkpoint. It is closed by EndCheckpoint.
func (s *LoadQueueStore) StartCheckpoint(ctx context.Context, loadQueueID int64, name, thread string, at time.Time) error {
	query, args, err := sq.Insert("checkpoints").
		Columns("load_queue_id", "name", "thread", "result", "start_time").
		Values(loadQueueID, name, thread, int(models.ResultRunning), at).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// EndCheckpoint closes the most recent open checkpoint with the same name and thread.
// The response time is the time elapsed since it was opened.
func (s *LoadQueueStore) EndCheckpoint(ctx context.Context, loadQueueID int64, e models.EndCheckpoint, at time.Time) error {
	query, args, err := sq.Select("id", "start_time").
		From("checkpoints").
		Where(sq.Eq{
			"load_queue_id": loadQueueID,
			"name":          e.Name,
			"thread":        e.Thread,
			"end_time":      nil,
		}).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return err
	}

	var (
		id    int64
		start time.Time
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return srvErrors.NewInvalidArgumentError("no running checkpoint '%s' on thread '%s'", e.Name, e.Thread)
	}
	if err != nil {
		return err
	}

	query, args, err = sq.Update("checkpoints").
		Set("response_time", at.Sub(start).Milliseconds()).
		Set("transfer_size", e.TransferSize).
		Set("result", int(e.Result)).
		Set("end_time", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// InsertCheckpoint stores a checkpoint measured by the caller.
func (s *LoadQueueStore) InsertCheckpoint(ctx context.Context, loadQueueID int64, e models.InsertCheckpoint, at time.Time) error {
	start := at.Add(-time.Duration(e.ResponseTime) * time.Millisecond)
	query, args, err := sq.Insert("checkpoints").
		Columns("load_queue_id", "name", "response_time", "transfer_size", "result", "start_time", "end_time").
		Values(loadQueueID, e.Name, e.ResponseTime, e.TransferSize, int(e.Result), start, at).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// CheckpointSummary aggregates the closed checkpoints of one name.
type CheckpointSummary struct {
	Name            string
	Count           int64
	Passed          int64
	AvgResponseTime float64
	TotalTransfer   int64
}

func (s *LoadQueueStore) Summaries(ctx context.Context, loadQueueID int64) ([]CheckpointSummary, error) {
	query, args, err := sq.Select(
		"name",
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE result = 1)",
		"COALESCE(AVG(response_time), 0)",
		"CAST(COALESCE(SUM(transfer_size), 0) AS BIGINT)",
	).From("checkpoints").
		Where(sq.Eq{"load_queue_id": loadQueueID}).
		Where(sq.NotEq{"end_time": nil}).
		GroupBy("name").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []CheckpointSummary{}
	for rows.Next() {
		var cs CheckpointSummary
		if err := rows.Scan(&cs.Name, &cs.Count, &cs.Passed, &cs.AvgResponseTime, &cs.TotalTransfer); err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}
