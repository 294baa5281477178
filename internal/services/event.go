package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/kubev2v/action-agent/internal/lifecycle"
	"github.com/kubev2v/action-agent/internal/metrics"
	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// EventService feeds logging events to the processor and ties testcase
// boundaries to session cleanup.
type EventService struct {
	processor *lifecycle.Processor
	actions   *ActionService
}

func NewEventService(p *lifecycle.Processor, a *ActionService) *EventService {
	return &EventService{
		processor: p,
		actions:   a,
	}
}

func (e *EventService) Process(ctx context.Context, req models.EventRequest) (models.ProcessorState, error) {
	state, err := e.processor.Process(ctx, req)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = srvErrors.Kind(err)
	}
	if req.Event != nil {
		metrics.ObserveEvent(req.Event.Type(), outcome)
	}
	metrics.SetLifeCycleState(state.LifeCycle)

	return state, err
}

func (e *EventService) State() models.ProcessorState {
	return e.processor.State()
}

// JoinTestcase attaches the agent to a testcase started by the caller.
// Once the join is accepted, resources the session kept from a previous
// testcase are released. A rejected join leaves them in place.
func (e *EventService) JoinTestcase(ctx context.Context, sessionID string, runID, testcaseID int64) (models.ProcessorState, error) {
	state, err := e.Process(ctx, models.EventRequest{
		Event: models.JoinTestCase{RunID: runID, TestcaseID: testcaseID},
	})
	if err != nil {
		return state, err
	}

	if released := e.actions.DeinitializeSession(ctx, sessionID); len(released) > 0 {
		zap.S().Named("event_service").Warnw("session had resources left from a previous testcase", "session", sessionID, "handles", released)
	}

	return state, nil
}

// LeaveTestcase detaches the agent from the current testcase and releases
// the session's resources. Resources are released even when the event is rejected.
func (e *EventService) LeaveTestcase(ctx context.Context, sessionID string) ([]models.Handle, models.ProcessorState, error) {
	released := e.actions.DeinitializeSession(ctx, sessionID)

	state, err := e.Process(ctx, models.EventRequest{Event: models.LeaveTestCase{}})

	return released, state, err
}
