package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

type ConfigurationStore struct {
	db QueryInterceptor
}

func NewConfigurationStore(db QueryInterceptor) *ConfigurationStore {
	return &ConfigurationStore{db: db}
}

func (s *ConfigurationStore) Get(ctx context.Context) (*models.Configuration, error) {
	query, args, err := sq.Select("agent_id").
		From("configuration").
		Where(sq.Eq{"id": 1}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var cfg models.Configuration
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&cfg.AgentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewResourceNotFoundError("configuration", "1")
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *ConfigurationStore) Save(ctx context.Context, cfg *models.Configuration) error {
	query, args, err := sq.Insert("configuration").
		Columns("id", "agent_id").
		Values(1, cfg.AgentID).
		Suffix("ON CONFLICT (id) DO UPDATE SET agent_id = EXCLUDED.agent_id").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
