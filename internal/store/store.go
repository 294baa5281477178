package store

import (
	"context"
	"database/sql"

	"github.com/kubev2v/action-agent/internal/store/migrations"
)

// Store provides access to all storage repositories.
type Store struct {
	db            *sql.DB
	configuration *ConfigurationStore
	runs          *RunStore
	suites        *SuiteStore
	testcases     *TestcaseStore
	loadQueues    *LoadQueueStore
	messages      *MessageStore
}

func NewStore(db *sql.DB) *Store {
	qi := newQueryInterceptor(db)
	return &Store{
		db:            db,
		configuration: NewConfigurationStore(qi),
		runs:          NewRunStore(qi),
		suites:        NewSuiteStore(qi),
		testcases:     NewTestcaseStore(qi),
		loadQueues:    NewLoadQueueStore(qi),
		messages:      NewMessageStore(qi),
	}
}

// Migrate brings the schema up to date.
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Configuration() *ConfigurationStore {
	return s.configuration
}

func (s *Store) Runs() *RunStore {
	return s.runs
}

func (s *Store) Suites() *SuiteStore {
	return s.suites
}

func (s *Store) Testcases() *TestcaseStore {
	return s.testcases
}

func (s *Store) LoadQueues() *LoadQueueStore {
	return s.loadQueues
}

func (s *Store) Messages() *MessageStore {
	return s.messages
}

func (s *Store) Close() error {
	return s.db.Close()
}
