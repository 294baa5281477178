package models

// LifeCycleState is the phase of the test run as seen by the event processor.
type LifeCycleState string

const (
	// LifeCycleInitialized - no run is active
	LifeCycleInitialized LifeCycleState = "INITIALIZED"
	// LifeCycleRunStarted - a run is active, no suite
	LifeCycleRunStarted LifeCycleState = "RUN_STARTED"
	// LifeCycleSuiteStarted - a suite is active, no testcase
	LifeCycleSuiteStarted LifeCycleState = "SUITE_STARTED"
	// LifeCycleTestCaseStarted - a testcase is active (started here or joined)
	LifeCycleTestCaseStarted LifeCycleState = "TEST_CASE_STARTED"
)

// RequirementKind tells how an event's requirement is matched against the current state.
type RequirementKind int

const (
	RequireExact RequirementKind = iota
	RequireAtLeastRunStarted
	RequireAtLeastSuiteStarted
	RequireAtLeastTestCaseStarted
)

// ScenarioType distinguishes plain testcases from testcases with running load queues.
type ScenarioType string

const (
	ScenarioTypeAny         ScenarioType = ""
	ScenarioTypeRegular     ScenarioType = "regular"
	ScenarioTypePerformance ScenarioType = "performance"
)

// Requirement is the lifecycle precondition an event type declares.
type Requirement struct {
	Kind     RequirementKind
	State    LifeCycleState // only for RequireExact
	Scenario ScenarioType
}

// String renders the requirement the way it appears in rejection messages.
func (r Requirement) String() string {
	switch r.Kind {
	case RequireAtLeastRunStarted:
		return "ATLEAST_RUN_STARTED"
	case RequireAtLeastSuiteStarted:
		return "ATLEAST_SUITE_STARTED"
	case RequireAtLeastTestCaseStarted:
		return "ATLEAST_TEST_CASE_STARTED"
	default:
		return string(r.State)
	}
}

func exactly(s LifeCycleState) Requirement {
	return Requirement{Kind: RequireExact, State: s}
}

func atLeast(k RequirementKind) Requirement {
	return Requirement{Kind: k}
}

var eventRequirements = map[EventType]Requirement{
	EventStartRun:              exactly(LifeCycleInitialized),
	EventEndRun:                exactly(LifeCycleRunStarted),
	EventUpdateRun:             atLeast(RequireAtLeastRunStarted),
	EventAddRunMetainfo:        atLeast(RequireAtLeastRunStarted),
	EventStartSuite:            exactly(LifeCycleRunStarted),
	EventEndSuite:              exactly(LifeCycleSuiteStarted),
	EventUpdateSuite:           atLeast(RequireAtLeastSuiteStarted),
	EventStartTestCase:         exactly(LifeCycleSuiteStarted),
	EventEndTestCase:           exactly(LifeCycleTestCaseStarted),
	EventUpdateTestCase:        atLeast(RequireAtLeastSuiteStarted),
	EventJoinTestCase:          exactly(LifeCycleInitialized),
	EventLeaveTestCase:         exactly(LifeCycleTestCaseStarted),
	EventAddTestcaseMetainfo:   atLeast(RequireAtLeastTestCaseStarted),
	EventAddScenarioMetainfo:   atLeast(RequireAtLeastTestCaseStarted),
	EventClearScenarioMetainfo: atLeast(RequireAtLeastTestCaseStarted),
	EventStartLoadQueue:        atLeast(RequireAtLeastTestCaseStarted),
	EventEndLoadQueue:          atLeast(RequireAtLeastTestCaseStarted),
	EventStartCheckpoint:       {Kind: RequireAtLeastTestCaseStarted, Scenario: ScenarioTypePerformance},
	EventEndCheckpoint:         {Kind: RequireAtLeastTestCaseStarted, Scenario: ScenarioTypePerformance},
	EventInsertCheckpoint:      {Kind: RequireAtLeastTestCaseStarted, Scenario: ScenarioTypePerformance},
	EventInsertMessage:         atLeast(RequireAtLeastRunStarted),
}

// RequirementOf returns the requirement declared by an event type.
func RequirementOf(t EventType) (Requirement, bool) {
	r, ok := eventRequirements[t]
	return r, ok
}

// EventTypes lists every supported event type.
func EventTypes() []EventType {
	types := make([]EventType, 0, len(eventRequirements))
	for t := range eventRequirements {
		types = append(types, t)
	}
	return types
}

// ProcessorState is the event processor's view of the test run.
// Ids are -1 when unset.
type ProcessorState struct {
	LifeCycle              LifeCycleState
	RunID                  int64
	RunName                string
	SuiteID                int64
	TestcaseID             int64
	LastExecutedTestcaseID int64
	LoadQueues             map[string]int64
}

func NewProcessorState() ProcessorState {
	return ProcessorState{
		LifeCycle:              LifeCycleInitialized,
		RunID:                  -1,
		SuiteID:                -1,
		TestcaseID:             -1,
		LastExecutedTestcaseID: -1,
		LoadQueues:             map[string]int64{},
	}
}

// ScenarioType is performance while at least one load queue runs in the current testcase.
func (s ProcessorState) ScenarioType() ScenarioType {
	if len(s.LoadQueues) > 0 {
		return ScenarioTypePerformance
	}
	return ScenarioTypeRegular
}

// Copy returns a snapshot that does not share the load queue map.
func (s ProcessorState) Copy() ProcessorState {
	c := s
	c.LoadQueues = make(map[string]int64, len(s.LoadQueues))
	for k, v := range s.LoadQueues {
		c.LoadQueues[k] = v
	}
	return c
}
