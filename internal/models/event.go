package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventType names a logging event.
type EventType string

const (
	EventStartRun              EventType = "StartRun"
	EventEndRun                EventType = "EndRun"
	EventUpdateRun             EventType = "UpdateRun"
	EventAddRunMetainfo        EventType = "AddRunMetainfo"
	EventStartSuite            EventType = "StartSuite"
	EventEndSuite              EventType = "EndSuite"
	EventUpdateSuite           EventType = "UpdateSuite"
	EventStartTestCase         EventType = "StartTestCase"
	EventEndTestCase           EventType = "EndTestCase"
	EventUpdateTestCase        EventType = "UpdateTestCase"
	EventJoinTestCase          EventType = "JoinTestCase"
	EventLeaveTestCase         EventType = "LeaveTestCase"
	EventAddTestcaseMetainfo   EventType = "AddTestcaseMetainfo"
	EventAddScenarioMetainfo   EventType = "AddScenarioMetainfo"
	EventClearScenarioMetainfo EventType = "ClearScenarioMetainfo"
	EventStartLoadQueue        EventType = "StartLoadQueue"
	EventEndLoadQueue          EventType = "EndLoadQueue"
	EventStartCheckpoint       EventType = "StartCheckpoint"
	EventEndCheckpoint         EventType = "EndCheckpoint"
	EventInsertCheckpoint      EventType = "InsertCheckpoint"
	EventInsertMessage         EventType = "InsertMessage"
)

// TestResult is the outcome of a testcase, load queue or checkpoint.
type TestResult int

const (
	ResultFailed  TestResult = 0
	ResultPassed  TestResult = 1
	ResultSkipped TestResult = 2
	ResultRunning TestResult = 4
)

func (r TestResult) String() string {
	switch r {
	case ResultFailed:
		return "FAILED"
	case ResultPassed:
		return "PASSED"
	case ResultSkipped:
		return "SKIPPED"
	case ResultRunning:
		return "RUNNING"
	default:
		return "UNKNOWN"
	}
}

// UnmarshalJSON accepts the numeric value or the name of a result.
func (r *TestResult) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*r = TestResult(n)
		return nil
	}

	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("test result must be a number or a name: %w", err)
	}
	for _, candidate := range []TestResult{ResultFailed, ResultPassed, ResultSkipped, ResultRunning} {
		if strings.EqualFold(candidate.String(), name) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown test result '%s'", name)
}

// Event is one of the closed set of logging events below.
type Event interface {
	Type() EventType
	isEvent()
}

// EventRequest is an event together with the time it was emitted.
type EventRequest struct {
	Event     Event
	Timestamp time.Time
}

type StartRun struct {
	RunName     string
	OSName      string
	ProductName string
	VersionName string
	BuildName   string
	HostName    string
}

type EndRun struct{}

type UpdateRun struct {
	RunName     string
	OSName      string
	ProductName string
	VersionName string
	BuildName   string
	UserNote    string
}

type AddRunMetainfo struct {
	Key   string
	Value string
}

type StartSuite struct {
	SuiteName   string
	PackageName string
}

type EndSuite struct{}

type UpdateSuite struct {
	SuiteName string
	UserNote  string
}

type StartTestCase struct {
	ScenarioName        string
	ScenarioDescription string
	TestcaseName        string
}

type EndTestCase struct {
	Result TestResult
}

type UpdateTestCase struct {
	TestcaseName string
	UserNote     string
	Result       TestResult
}

// JoinTestCase attaches this agent to a testcase started elsewhere.
type JoinTestCase struct {
	RunID      int64
	TestcaseID int64
}

type LeaveTestCase struct{}

type AddTestcaseMetainfo struct {
	Key   string
	Value string
}

type AddScenarioMetainfo struct {
	Key   string
	Value string
}

type ClearScenarioMetainfo struct{}

type StartLoadQueue struct {
	Name        string
	HostName    string
	ThreadCount int
}

type EndLoadQueue struct {
	Name   string
	Result TestResult
}

type StartCheckpoint struct {
	LoadQueue string
	Name      string
	Thread    string
}

type EndCheckpoint struct {
	LoadQueue    string
	Name         string
	Thread       string
	TransferSize int64
	Result       TestResult
}

type InsertCheckpoint struct {
	LoadQueue    string
	Name         string
	ResponseTime int64
	TransferSize int64
	Result       TestResult
}

type InsertMessage struct {
	Level      string
	Message    string
	Thread     string
	HostName   string
	RunMessage bool
}

func (StartRun) Type() EventType              { return EventStartRun }
func (EndRun) Type() EventType                { return EventEndRun }
func (UpdateRun) Type() EventType             { return EventUpdateRun }
func (AddRunMetainfo) Type() EventType        { return EventAddRunMetainfo }
func (StartSuite) Type() EventType            { return EventStartSuite }
func (EndSuite) Type() EventType              { return EventEndSuite }
func (UpdateSuite) Type() EventType           { return EventUpdateSuite }
func (StartTestCase) Type() EventType         { return EventStartTestCase }
func (EndTestCase) Type() EventType           { return EventEndTestCase }
func (UpdateTestCase) Type() EventType        { return EventUpdateTestCase }
func (JoinTestCase) Type() EventType          { return EventJoinTestCase }
func (LeaveTestCase) Type() EventType         { return EventLeaveTestCase }
func (AddTestcaseMetainfo) Type() EventType   { return EventAddTestcaseMetainfo }
func (AddScenarioMetainfo) Type() EventType   { return EventAddScenarioMetainfo }
func (ClearScenarioMetainfo) Type() EventType { return EventClearScenarioMetainfo }
func (StartLoadQueue) Type() EventType        { return EventStartLoadQueue }
func (EndLoadQueue) Type() EventType          { return EventEndLoadQueue }
func (StartCheckpoint) Type() EventType       { return EventStartCheckpoint }
func (EndCheckpoint) Type() EventType         { return EventEndCheckpoint }
func (InsertCheckpoint) Type() EventType      { return EventInsertCheckpoint }
func (InsertMessage) Type() EventType         { return EventInsertMessage }

func (StartRun) isEvent()              {}
func (EndRun) isEvent()                {}
func (UpdateRun) isEvent()             {}
func (AddRunMetainfo) isEvent()        {}
func (StartSuite) isEvent()            {}
func (EndSuite) isEvent()              {}
func (UpdateSuite) isEvent()           {}
func (StartTestCase) isEvent()         {}
func (EndTestCase) isEvent()           {}
func (UpdateTestCase) isEvent()        {}
func (JoinTestCase) isEvent()          {}
func (LeaveTestCase) isEvent()         {}
func (AddTestcaseMetainfo) isEvent()   {}
func (AddScenarioMetainfo) isEvent()   {}
func (ClearScenarioMetainfo) isEvent() {}
func (StartLoadQueue) isEvent()        {}
func (EndLoadQueue) isEvent()          {}
func (StartCheckpoint) isEvent()       {}
func (EndCheckpoint) isEvent()         {}
func (InsertCheckpoint) isEvent()      {}
func (InsertMessage) isEvent()         {}
