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

type TestcaseStore struct {
	db QueryInterceptor
}

func NewTestcaseStore(db QueryInterceptor) *TestcaseStore {
	return &TestcaseStore{db: db}
}

func (s *TestcaseStore) Insert(ctx context.Context, tc models.Testcase) (int64, error) {
	query, args, err := sq.Insert("testcases").
		Columns("suite_id", "scenario_name", "scenario_description", "name", "result", "start_time").
		Values(tc.SuiteID, tc.ScenarioName, tc.ScenarioDescription, tc.Name, int(models.ResultRunning), tc.StartTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	return id, err
}

func (s *TestcaseStore) End(ctx context.Context, id int64, result models.TestResult, at time.Time) error {
	return s.update(ctx, id, sq.Eq{"result": int(result), "end_time": at})
}

// Update changes the name and note when set. The result is always written.
func (s *TestcaseStore) Update(ctx context.Context, id int64, u models.UpdateTestCase) error {
	set := sq.Eq{"result": int(u.Result)}
	if u.TestcaseName != "" {
		set["name"] = u.TestcaseName
	}
	if u.UserNote != "" {
		set["user_note"] = u.UserNote
	}
	return s.update(ctx, id, set)
}

func (s *TestcaseStore) update(ctx context.Context, id int64, set sq.Eq) error {
	query, args, err := sq.Update("testcases").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Get returns a testcase together with the name of its suite.
func (s *TestcaseStore) Get(ctx context.Context, id int64) (*models.Testcase, error) {
	query, args, err := s.selectTestcases().
		Where(sq.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	tc, err := scanTestcase(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("testcase", idString(id))
	}
	if err != nil {
		return nil, err
	}
	return &tc, nil
}

// ListByRun returns every testcase of a run in start order.
func (s *TestcaseStore) ListByRun(ctx context.Context, runID int64) ([]models.Testcase, error) {
	query, args, err := s.selectTestcases().
		Where(sq.Eq{"s.run_id": runID}).
		OrderBy("t.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testcases := []models.Testcase{}
	for rows.Next() {
		tc, err := scanTestcase(rows)
		if err != nil {
			return nil, err
		}
		testcases = append(testcases, tc)
	}
	return testcases, rows.Err()
}

func (s *TestcaseStore) selectTestcases() sq.SelectBuilder {
	return sq.Select(
		"t.id", "t.suite_id", "s.name", "t.scenario_name", "t.scenario_description",
		"t.name", "t.user_note", "t.result", "t.start_time", "t.end_time",
	).From("testcases t").
		Join("suites s ON s.id = t.suite_id")
}

func scanTestcase(row scanner) (models.Testcase, error) {
	var (
		tc     models.Testcase
		result int
		end    sql.NullTime
	)
	err := row.Scan(
		&tc.ID,
		&tc.SuiteID,
		&tc.SuiteName,
		&tc.ScenarioName,
		&tc.ScenarioDescription,
		&tc.Name,
		&tc.UserNote,
		&result,
		&tc.StartTime,
		&end,
	)
	tc.Result = models.TestResult(result)
	tc.EndTime = nullTime(end)
	return tc, err
}

func (s *TestcaseStore) AddMetainfo(ctx context.Context, testcaseID int64, key, value string) error {
	return insertMetainfo(ctx, s.db, "testcase_metainfo", "testcase_id", testcaseID, key, value)
}

func (s *TestcaseStore) Metainfo(ctx context.Context, testcaseID int64) (map[string]string, error) {
	return listMetainfo(ctx, s.db, "testcase_metainfo", "testcase_id", testcaseID)
}

func (s *TestcaseStore) AddScenarioMetainfo(ctx context.Context, testcaseID int64, key, value string) error {
	return insertMetainfo(ctx, s.db, "scenario_metainfo", "testcase_id", testcaseID, key, value)
}

func (s *TestcaseStore) ScenarioMetainfo(ctx context.Context, testcaseID int64) (map[string]string, error) {
	return listMetainfo(ctx, s.db, "scenario_metainfo", "testcase_id", testcaseID)
}

func (s *TestcaseStore) ClearScenarioMetainfo(ctx context.Context, testcaseID int64) error {
	query, args, err := sq.Delete("scenario_metainfo").
		Where(sq.Eq{"testcase_id": testcaseID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
