package lifecycle

import (
	"github.com/kubev2v/action-agent/internal/models"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

var order = map[models.LifeCycleState]int{
	models.LifeCycleInitialized:     0,
	models.LifeCycleRunStarted:      1,
	models.LifeCycleSuiteStarted:    2,
	models.LifeCycleTestCaseStarted: 3,
}

// CheckIfCanBeProcessed tells whether an event may be processed in the given state.
// It has no side effect.
func CheckIfCanBeProcessed(event models.Event, state models.ProcessorState) error {
	if event == nil {
		return srvErrors.NewUnsupportedEventError("<nil>")
	}

	req, found := models.RequirementOf(event.Type())
	if !found {
		return srvErrors.NewUnsupportedEventError(string(event.Type()))
	}

	if !Satisfies(req, state.LifeCycle) {
		return srvErrors.NewIncorrectProcessorStateError(string(event.Type()), req.String(), string(state.LifeCycle))
	}

	if req.Scenario != models.ScenarioTypeAny && state.ScenarioType() != req.Scenario {
		return srvErrors.NewIncorrectScenarioTypeError(string(event.Type()), string(req.Scenario), string(state.ScenarioType()))
	}

	return nil
}

// Satisfies reports whether current meets the lifecycle part of req.
func Satisfies(req models.Requirement, current models.LifeCycleState) bool {
	switch req.Kind {
	case models.RequireExact:
		return current == req.State
	case models.RequireAtLeastRunStarted:
		return order[current] >= order[models.LifeCycleRunStarted]
	case models.RequireAtLeastSuiteStarted:
		return order[current] >= order[models.LifeCycleSuiteStarted]
	case models.RequireAtLeastTestCaseStarted:
		return current == models.LifeCycleTestCaseStarted
	default:
		return false
	}
}
