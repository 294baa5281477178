package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// Processor applies logging events to the event store in arrival order.
//
// Each event is gated, persisted and then moves the state, all under one lock.
// A rejected or failed event leaves the state untouched.
type Processor struct {
	mu    sync.Mutex
	state models.ProcessorState
	store EventStore
	now   func() time.Time
}

func NewProcessor(store EventStore) *Processor {
	return &Processor{
		state: models.NewProcessorState(),
		store: store,
		now:   time.Now,
	}
}

// State returns a snapshot of the current state.
func (p *Processor) State() models.ProcessorState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Copy()
}

// Process gates and applies one event and returns the resulting state.
func (p *Processor) Process(ctx context.Context, req models.EventRequest) (models.ProcessorState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := CheckIfCanBeProcessed(req.Event, p.state); err != nil {
		zap.S().Named("event_processor").Debugw("event rejected", "event", eventName(req.Event), "state", p.state.LifeCycle, "error", err)
		return p.state.Copy(), err
	}

	at := req.Timestamp
	if at.IsZero() {
		at = p.now()
	}

	next, err := p.apply(ctx, req.Event, p.state.Copy(), at)
	if err != nil {
		return p.state.Copy(), err
	}

	if next.LifeCycle != p.state.LifeCycle {
		zap.S().Named("event_processor").Infow("lifecycle changed", "event", req.Event.Type(), "from", p.state.LifeCycle, "to", next.LifeCycle)
	}
	p.state = next

	return p.state.Copy(), nil
}

func (p *Processor) apply(ctx context.Context, event models.Event, s models.ProcessorState, at time.Time) (models.ProcessorState, error) {
	var err error

	switch e := event.(type) {
	case models.StartRun:
		s.RunID, err = p.store.InsertRun(ctx, models.Run{
			Name:        e.RunName,
			OSName:      e.OSName,
			ProductName: e.ProductName,
			VersionName: e.VersionName,
			BuildName:   e.BuildName,
			HostName:    e.HostName,
			StartTime:   at,
		})
		s.RunName = e.RunName
		s.LifeCycle = models.LifeCycleRunStarted
	case models.EndRun:
		err = p.store.EndRun(ctx, s.RunID, at)
		s = models.NewProcessorState()
	case models.UpdateRun:
		err = p.store.UpdateRun(ctx, s.RunID, e)
		if e.RunName != "" {
			s.RunName = e.RunName
		}
	case models.AddRunMetainfo:
		err = p.store.AddRunMetainfo(ctx, s.RunID, e.Key, e.Value)

	case models.StartSuite:
		s.SuiteID, err = p.store.InsertSuite(ctx, models.Suite{
			RunID:       s.RunID,
			Name:        e.SuiteName,
			PackageName: e.PackageName,
			StartTime:   at,
		})
		s.LifeCycle = models.LifeCycleSuiteStarted
	case models.EndSuite:
		err = p.store.EndSuite(ctx, s.SuiteID, at)
		s.SuiteID = -1
		s.LastExecutedTestcaseID = -1
		s.LifeCycle = models.LifeCycleRunStarted
	case models.UpdateSuite:
		if s.SuiteID < 0 {
			return s, srvErrors.NewInvalidArgumentError("no suite to update")
		}
		err = p.store.UpdateSuite(ctx, s.SuiteID, e)

	case models.StartTestCase:
		s.TestcaseID, err = p.store.InsertTestcase(ctx, models.Testcase{
			SuiteID:             s.SuiteID,
			ScenarioName:        e.ScenarioName,
			ScenarioDescription: e.ScenarioDescription,
			Name:                e.TestcaseName,
			StartTime:           at,
		})
		s.LoadQueues = map[string]int64{}
		s.LifeCycle = models.LifeCycleTestCaseStarted
	case models.EndTestCase:
		err = p.endLoadQueues(ctx, at)
		if err == nil {
			err = p.store.EndTestcase(ctx, s.TestcaseID, e.Result, at)
		}
		s.LastExecutedTestcaseID = s.TestcaseID
		s.TestcaseID = -1
		s.LoadQueues = map[string]int64{}
		s.LifeCycle = models.LifeCycleSuiteStarted
	case models.UpdateTestCase:
		id := s.TestcaseID
		if id < 0 {
			id = s.LastExecutedTestcaseID
		}
		if id < 0 {
			return s, srvErrors.NewInvalidArgumentError("no testcase to update")
		}
		err = p.store.UpdateTestcase(ctx, id, e)

	case models.JoinTestCase:
		s.RunID = e.RunID
		s.TestcaseID = e.TestcaseID
		s.LoadQueues = map[string]int64{}
		s.LifeCycle = models.LifeCycleTestCaseStarted
	case models.LeaveTestCase:
		err = p.endLoadQueues(ctx, at)
		s = models.NewProcessorState()

	case models.AddTestcaseMetainfo:
		err = p.store.AddTestcaseMetainfo(ctx, s.TestcaseID, e.Key, e.Value)
	case models.AddScenarioMetainfo:
		err = p.store.AddScenarioMetainfo(ctx, s.TestcaseID, e.Key, e.Value)
	case models.ClearScenarioMetainfo:
		err = p.store.ClearScenarioMetainfo(ctx, s.TestcaseID)

	case models.StartLoadQueue:
		if _, running := s.LoadQueues[e.Name]; running {
			return s, srvErrors.NewLoadQueueAlreadyStartedError(e.Name)
		}
		var id int64
		id, err = p.store.InsertLoadQueue(ctx, s.TestcaseID, e, at)
		s.LoadQueues[e.Name] = id
	case models.EndLoadQueue:
		id, running := s.LoadQueues[e.Name]
		if !running {
			return s, srvErrors.NewNoSuchLoadQueueError(e.Name)
		}
		err = p.store.EndLoadQueue(ctx, id, e.Result, at)
		delete(s.LoadQueues, e.Name)

	case models.StartCheckpoint:
		var id int64
		if id, err = loadQueueID(s, e.LoadQueue); err == nil {
			err = p.store.StartCheckpoint(ctx, id, e.Name, e.Thread, at)
		}
	case models.EndCheckpoint:
		var id int64
		if id, err = loadQueueID(s, e.LoadQueue); err == nil {
			err = p.store.EndCheckpoint(ctx, id, e, at)
		}
	case models.InsertCheckpoint:
		var id int64
		if id, err = loadQueueID(s, e.LoadQueue); err == nil {
			err = p.store.InsertCheckpoint(ctx, id, e, at)
		}

	case models.InsertMessage:
		err = p.store.InsertMessage(ctx, message(s, e, at))

	default:
		return s, srvErrors.NewUnsupportedEventError(eventName(event))
	}

	if err != nil {
		return s, fmt.Errorf("processing %s: %w", event.Type(), err)
	}
	return s, nil
}

// endLoadQueues closes the load queues left running when a testcase ends.
// Each queue is dropped from the live state once it is stored as ended.
func (p *Processor) endLoadQueues(ctx context.Context, at time.Time) error {
	names := make([]string, 0, len(p.state.LoadQueues))
	for name := range p.state.LoadQueues {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := p.store.EndLoadQueue(ctx, p.state.LoadQueues[name], models.ResultPassed, at); err != nil {
			return fmt.Errorf("ending load queue '%s': %w", name, err)
		}
		delete(p.state.LoadQueues, name)
	}
	return nil
}

func loadQueueID(s models.ProcessorState, name string) (int64, error) {
	id, running := s.LoadQueues[name]
	if !running {
		return 0, srvErrors.NewNoSuchLoadQueueError(name)
	}
	return id, nil
}

func message(s models.ProcessorState, e models.InsertMessage, at time.Time) models.Message {
	m := models.Message{
		RunID:     s.RunID,
		Level:     e.Level,
		Message:   e.Message,
		Thread:    e.Thread,
		HostName:  e.HostName,
		Timestamp: at,
	}
	if e.RunMessage {
		return m
	}
	if s.SuiteID >= 0 {
		id := s.SuiteID
		m.SuiteID = &id
	}
	if s.TestcaseID >= 0 {
		id := s.TestcaseID
		m.TestcaseID = &id
	}
	return m
}

func eventName(e models.Event) string {
	if e == nil {
		return "<nil>"
	}
	return string(e.Type())
}
