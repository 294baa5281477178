package lifecycle

import (
	"context"
	"time"

	"github.com/kubev2v/action-agent/internal/models"
)

// EventStore persists the effect of accepted events.
type EventStore interface {
	InsertRun(ctx context.Context, run models.Run) (int64, error)
	EndRun(ctx context.Context, runID int64, at time.Time) error
	UpdateRun(ctx context.Context, runID int64, u models.UpdateRun) error
	AddRunMetainfo(ctx context.Context, runID int64, key, value string) error

	InsertSuite(ctx context.Context, suite models.Suite) (int64, error)
	EndSuite(ctx context.Context, suiteID int64, at time.Time) error
	UpdateSuite(ctx context.Context, suiteID int64, u models.UpdateSuite) error

	InsertTestcase(ctx context.Context, tc models.Testcase) (int64, error)
	EndTestcase(ctx context.Context, testcaseID int64, result models.TestResult, at time.Time) error
	UpdateTestcase(ctx context.Context, testcaseID int64, u models.UpdateTestCase) error
	AddTestcaseMetainfo(ctx context.Context, testcaseID int64, key, value string) error
	AddScenarioMetainfo(ctx context.Context, testcaseID int64, key, value string) error
	ClearScenarioMetainfo(ctx context.Context, testcaseID int64) error

	InsertLoadQueue(ctx context.Context, testcaseID int64, q models.StartLoadQueue, at time.Time) (int64, error)
	EndLoadQueue(ctx context.Context, loadQueueID int64, result models.TestResult, at time.Time) error
	StartCheckpoint(ctx context.Context, loadQueueID int64, name, thread string, at time.Time) error
	EndCheckpoint(ctx context.Context, loadQueueID int64, e models.EndCheckpoint, at time.Time) error
	InsertCheckpoint(ctx context.Context, loadQueueID int64, e models.InsertCheckpoint, at time.Time) error

	InsertMessage(ctx context.Context, m models.Message) error
}
