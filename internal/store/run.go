package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

var runColumns = []string{
	"id", "name", "os_name", "product_name", "version_name",
	"build_name", "host_name", "user_note", "start_time", "end_time",
}

type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

func (s *RunStore) Insert(ctx context.Context, run models.Run) (int64, error) {
	query, args, err := sq.Insert("runs").
		Columns("name", "os_name", "product_name", "version_name", "build_name", "host_name", "start_time").
		Values(run.Name, run.OSName, run.ProductName, run.VersionName, run.BuildName, run.HostName, run.StartTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	return id, err
}

func (s *RunStore) End(ctx context.Context, id int64, at time.Time) error {
	return s.update(ctx, id, sq.Eq{"end_time": at})
}

// Update changes the non-empty fields of u.
func (s *RunStore) Update(ctx context.Context, id int64, u models.UpdateRun) error {
	set := sq.Eq{}
	for column, value := range map[string]string{
		"name":         u.RunName,
		"os_name":      u.OSName,
		"product_name": u.ProductName,
		"version_name": u.VersionName,
		"build_name":   u.BuildName,
		"user_note":    u.UserNote,
	} {
		if value != "" {
			set[column] = value
		}
	}
	if len(set) == 0 {
		return nil
	}
	return s.update(ctx, id, set)
}

func (s *RunStore) update(ctx context.Context, id int64, set sq.Eq) error {
	query, args, err := sq.Update("runs").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *RunStore) AddMetainfo(ctx context.Context, runID int64, key, value string) error {
	return insertMetainfo(ctx, s.db, "run_metainfo", "run_id", runID, key, value)
}

// Get returns a run with its metainfo.
func (s *RunStore) Get(ctx context.Context, id int64) (*models.Run, error) {
	query, args, err := sq.Select(runColumns...).
		From("runs").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewRunNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	run.Metainfo, err = listMetainfo(ctx, s.db, "run_metainfo", "run_id", id)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns runs, newest first.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.Run, error) {
	builder := sq.Select(runColumns...).From("runs").OrderBy("id DESC")
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

	runs := []models.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (models.Run, error) {
	var (
		run models.Run
		end sql.NullTime
	)
	err := row.Scan(
		&run.ID,
		&run.Name,
		&run.OSName,
		&run.ProductName,
		&run.VersionName,
		&run.BuildName,
		&run.HostName,
		&run.UserNote,
		&run.StartTime,
		&end,
	)
	run.EndTime = nullTime(end)
	return run, err
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func insertMetainfo(ctx context.Context, db QueryInterceptor, table, owner string, ownerID int64, key, value string) error {
	query, args, err := sq.Insert(table).
		Columns(owner, "meta_key", "meta_value").
		Values(ownerID, key, value).
		ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func listMetainfo(ctx context.Context, db QueryInterceptor, table, owner string, ownerID int64) (map[string]string, error) {
	query, args, err := sq.Select("meta_key", "meta_value").
		From(table).
		Where(sq.Eq{owner: ownerID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}
