package lifecycle_test

import (
	"context"
	"time"

	"github.com/kubev2v/action-agent/internal/models"
)

// recordingStore records the name of every call and hands out sequential ids.
type recordingStore struct {
	calls  []string
	nextID int64
	err    error

	endedQueues []int64
	// endQueueErr, when set, decides the outcome of each EndLoadQueue call.
	endQueueErr func(id int64) error
}

func (r *recordingStore) record(name string) error {
	r.calls = append(r.calls, name)
	return r.err
}

func (r *recordingStore) id(name string) (int64, error) {
	if err := r.record(name); err != nil {
		return 0, err
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recordingStore) InsertRun(context.Context, models.Run) (int64, error) {
	return r.id("InsertRun")
}

func (r *recordingStore) EndRun(context.Context, int64, time.Time) error {
	return r.record("EndRun")
}

func (r *recordingStore) UpdateRun(context.Context, int64, models.UpdateRun) error {
	return r.record("UpdateRun")
}

func (r *recordingStore) AddRunMetainfo(context.Context, int64, string, string) error {
	return r.record("AddRunMetainfo")
}

func (r *recordingStore) InsertSuite(context.Context, models.Suite) (int64, error) {
	return r.id("InsertSuite")
}

func (r *recordingStore) EndSuite(context.Context, int64, time.Time) error {
	return r.record("EndSuite")
}

func (r *recordingStore) UpdateSuite(context.Context, int64, models.UpdateSuite) error {
	return r.record("UpdateSuite")
}

func (r *recordingStore) InsertTestcase(context.Context, models.Testcase) (int64, error) {
	return r.id("InsertTestcase")
}

func (r *recordingStore) EndTestcase(context.Context, int64, models.TestResult, time.Time) error {
	return r.record("EndTestcase")
}

func (r *recordingStore) UpdateTestcase(context.Context, int64, models.UpdateTestCase) error {
	return r.record("UpdateTestcase")
}

func (r *recordingStore) AddTestcaseMetainfo(context.Context, int64, string, string) error {
	return r.record("AddTestcaseMetainfo")
}

func (r *recordingStore) AddScenarioMetainfo(context.Context, int64, string, string) error {
	return r.record("AddScenarioMetainfo")
}

func (r *recordingStore) ClearScenarioMetainfo(context.Context, int64) error {
	return r.record("ClearScenarioMetainfo")
}

func (r *recordingStore) InsertLoadQueue(context.Context, int64, models.StartLoadQueue, time.Time) (int64, error) {
	return r.id("InsertLoadQueue")
}

func (r *recordingStore) EndLoadQueue(_ context.Context, id int64, _ models.TestResult, _ time.Time) error {
	if err := r.record("EndLoadQueue"); err != nil {
		return err
	}
	if r.endQueueErr != nil {
		if err := r.endQueueErr(id); err != nil {
			return err
		}
	}
	r.endedQueues = append(r.endedQueues, id)
	return nil
}

func (r *recordingStore) StartCheckpoint(context.Context, int64, string, string, time.Time) error {
	return r.record("StartCheckpoint")
}

func (r *recordingStore) EndCheckpoint(context.Context, int64, models.EndCheckpoint, time.Time) error {
	return r.record("EndCheckpoint")
}

func (r *recordingStore) InsertCheckpoint(context.Context, int64, models.InsertCheckpoint, time.Time) error {
	return r.record("InsertCheckpoint")
}

func (r *recordingStore) InsertMessage(context.Context, models.Message) error {
	return r.record("InsertMessage")
}

// sampleEvent returns an event of the given type with plausible fields.
func sampleEvent(t models.EventType) models.Event {
	switch t {
	case models.EventStartRun:
		return models.StartRun{RunName: "run"}
	case models.EventEndRun:
		return models.EndRun{}
	case models.EventUpdateRun:
		return models.UpdateRun{UserNote: "note"}
	case models.EventAddRunMetainfo:
		return models.AddRunMetainfo{Key: "k", Value: "v"}
	case models.EventStartSuite:
		return models.StartSuite{SuiteName: "suite"}
	case models.EventEndSuite:
		return models.EndSuite{}
	case models.EventUpdateSuite:
		return models.UpdateSuite{UserNote: "note"}
	case models.EventStartTestCase:
		return models.StartTestCase{TestcaseName: "tc"}
	case models.EventEndTestCase:
		return models.EndTestCase{Result: models.ResultPassed}
	case models.EventUpdateTestCase:
		return models.UpdateTestCase{Result: models.ResultPassed}
	case models.EventJoinTestCase:
		return models.JoinTestCase{RunID: 1, TestcaseID: 1}
	case models.EventLeaveTestCase:
		return models.LeaveTestCase{}
	case models.EventAddTestcaseMetainfo:
		return models.AddTestcaseMetainfo{Key: "k", Value: "v"}
	case models.EventAddScenarioMetainfo:
		return models.AddScenarioMetainfo{Key: "k", Value: "v"}
	case models.EventClearScenarioMetainfo:
		return models.ClearScenarioMetainfo{}
	case models.EventStartLoadQueue:
		return models.StartLoadQueue{Name: "q"}
	case models.EventEndLoadQueue:
		return models.EndLoadQueue{Name: "q"}
	case models.EventStartCheckpoint:
		return models.StartCheckpoint{LoadQueue: "q", Name: "cp"}
	case models.EventEndCheckpoint:
		return models.EndCheckpoint{LoadQueue: "q", Name: "cp"}
	case models.EventInsertCheckpoint:
		return models.InsertCheckpoint{LoadQueue: "q", Name: "cp"}
	case models.EventInsertMessage:
		return models.InsertMessage{Level: "INFO", Message: "hello"}
	}
	return nil
}
