package store

import (
	"context"
	"time"

	"github.com/kubev2v/action-agent/internal/models"
)

// EventLog writes the effect of logging events across the run, suite,
// testcase, load queue and message repositories.
type EventLog struct {
	s *Store
}

func (s *Store) EventLog() *EventLog {
	return &EventLog{s: s}
}

func (l *EventLog) InsertRun(ctx context.Context, run models.Run) (int64, error) {
	return l.s.runs.Insert(ctx, run)
}

func (l *EventLog) EndRun(ctx context.Context, runID int64, at time.Time) error {
	return l.s.runs.End(ctx, runID, at)
}

func (l *EventLog) UpdateRun(ctx context.Context, runID int64, u models.UpdateRun) error {
	return l.s.runs.Update(ctx, runID, u)
}

func (l *EventLog) AddRunMetainfo(ctx context.Context, runID int64, key, value string) error {
	return l.s.runs.AddMetainfo(ctx, runID, key, value)
}

func (l *EventLog) InsertSuite(ctx context.Context, suite models.Suite) (int64, error) {
	return l.s.suites.Insert(ctx, suite)
}

func (l *EventLog) EndSuite(ctx context.Context, suiteID int64, at time.Time) error {
	return l.s.suites.End(ctx, suiteID, at)
}

func (l *EventLog) UpdateSuite(ctx context.Context, suiteID int64, u models.UpdateSuite) error {
	return l.s.suites.Update(ctx, suiteID, u)
}

func (l *EventLog) InsertTestcase(ctx context.Context, tc models.Testcase) (int64, error) {
	return l.s.testcases.Insert(ctx, tc)
}

func (l *EventLog) EndTestcase(ctx context.Context, testcaseID int64, result models.TestResult, at time.Time) error {
	return l.s.testcases.End(ctx, testcaseID, result, at)
}

func (l *EventLog) UpdateTestcase(ctx context.Context, testcaseID int64, u models.UpdateTestCase) error {
	return l.s.testcases.Update(ctx, testcaseID, u)
}

func (l *EventLog) AddTestcaseMetainfo(ctx context.Context, testcaseID int64, key, value string) error {
	return l.s.testcases.AddMetainfo(ctx, testcaseID, key, value)
}

func (l *EventLog) AddScenarioMetainfo(ctx context.Context, testcaseID int64, key, value string) error {
	return l.s.testcases.AddScenarioMetainfo(ctx, testcaseID, key, value)
}

func (l *EventLog) ClearScenarioMetainfo(ctx context.Context, testcaseID int64) error {
	return l.s.testcases.ClearScenarioMetainfo(ctx, testcaseID)
}

func (l *EventLog) InsertLoadQueue(ctx context.Context, testcaseID int64, q models.StartLoadQueue, at time.Time) (int64, error) {
	return l.s.loadQueues.Insert(ctx, testcaseID, q, at)
}

func (l *EventLog) EndLoadQueue(ctx context.Context, loadQueueID int64, result models.TestResult, at time.Time) error {
	return l.s.loadQueues.End(ctx, loadQueueID, result, at)
}

func (l *EventLog) StartCheckpoint(ctx context.Context, loadQueueID int64, name, thread string, at time.Time) error {
	return l.s.loadQueues.StartCheckpoint(ctx, loadQueueID, name, thread, at)
}

func (l *EventLog) EndCheckpoint(ctx context.Context, loadQueueID int64, e models.EndCheckpoint, at time.Time) error {
	return l.s.loadQueues.EndCheckpoint(ctx, loadQueueID, e, at)
}

func (l *EventLog) InsertCheckpoint(ctx context.Context, loadQueueID int64, e models.InsertCheckpoint, at time.Time) error {
	return l.s.loadQueues.InsertCheckpoint(ctx, loadQueueID, e, at)
}

func (l *EventLog) InsertMessage(ctx context.Context, m models.Message) error {
	return l.s.messages.Insert(ctx, m)
}
