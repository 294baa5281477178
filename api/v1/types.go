// Package v1 holds the request and response types of the /api/v1 surface.
package v1

import (
	"encoding/json"
	"time"
)

// Error is the payload of every non-2xx response.
type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// InitializeRequest asks for a new resource of a component.
type InitializeRequest struct {
	SessionId     *string  `json:"sessionId,omitempty"`
	Component     string   `json:"component" binding:"required"`
	Method        *string  `json:"method,omitempty"`
	ArgumentTypes []string `json:"argumentTypes,omitempty" binding:"omitempty,dive,typename"`
}

type ResourceResponse struct {
	ResourceId uint64 `json:"resourceId"`
}

// ExecuteRequest runs an action of a live resource. Every argument value is a
// JSON document decoded against the type at the same position.
type ExecuteRequest struct {
	SessionId      *string  `json:"sessionId,omitempty"`
	ResourceId     *uint64  `json:"resourceId" binding:"required"`
	Component      *string  `json:"component,omitempty"`
	Method         string   `json:"method" binding:"required"`
	ArgumentTypes  []string `json:"argumentTypes,omitempty" binding:"omitempty,dive,typename"`
	ArgumentValues []string `json:"argumentValues,omitempty"`
}

type ActionResult struct {
	ActionResult any `json:"actionResult"`
}

// DeleteActionParams defines parameters for DeleteAction.
type DeleteActionParams struct {
	SessionId  *string `form:"sessionId,omitempty" json:"sessionId,omitempty"`
	ResourceId uint64  `form:"resourceId" json:"resourceId"`
}

type DeleteResourceResponseStatus string

const (
	DeleteResourceResponseStatusDeleted DeleteResourceResponseStatus = "deleted"
)

type DeleteResourceResponse struct {
	ResourceId uint64                       `json:"resourceId"`
	Status     DeleteResourceResponseStatus `json:"status"`
}

type Resource struct {
	ResourceId uint64    `json:"resourceId"`
	SessionId  string    `json:"sessionId"`
	Component  string    `json:"component"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ResourceList struct {
	SessionId string     `json:"sessionId"`
	Resources []Resource `json:"resources"`
}

type SessionCleanup struct {
	SessionId   string   `json:"sessionId"`
	ResourceIds []uint64 `json:"resourceIds"`
}

type ComponentAction struct {
	Name           string   `json:"name"`
	ParameterTypes []string `json:"parameterTypes"`
	ReturnType     *string  `json:"returnType,omitempty"`
}

type Component struct {
	Name    string            `json:"name"`
	Actions []ComponentAction `json:"actions"`
}

type ComponentList struct {
	Components []Component `json:"components"`
}

type JoinTestcaseRequest struct {
	SessionId  *string `json:"sessionId,omitempty"`
	RunId      int64   `json:"runId" binding:"min=1"`
	TestcaseId int64   `json:"testcaseId" binding:"min=1"`
}

// LeaveTestcaseParams defines parameters for LeaveTestcase.
type LeaveTestcaseParams struct {
	SessionId *string `form:"sessionId,omitempty" json:"sessionId,omitempty"`
}

type TestcaseResponse struct {
	SessionId         string         `json:"sessionId"`
	ReleasedResources []uint64       `json:"releasedResources"`
	State             ProcessorState `json:"state"`
}

// EventRequest carries one logging event. Payload holds the fields of the
// event named by Type.
type EventRequest struct {
	Type      string          `json:"type" binding:"required"`
	Timestamp *time.Time      `json:"timestamp,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type ProcessorStateLifeCycle string

const (
	ProcessorStateLifeCycleINITIALIZED     ProcessorStateLifeCycle = "INITIALIZED"
	ProcessorStateLifeCycleRUNSTARTED      ProcessorStateLifeCycle = "RUN_STARTED"
	ProcessorStateLifeCycleSUITESTARTED    ProcessorStateLifeCycle = "SUITE_STARTED"
	ProcessorStateLifeCycleTESTCASESTARTED ProcessorStateLifeCycle = "TEST_CASE_STARTED"
)

type ProcessorState struct {
	LifeCycle              ProcessorStateLifeCycle `json:"lifeCycle"`
	ScenarioType           string                  `json:"scenarioType"`
	RunId                  *int64                  `json:"runId,omitempty"`
	RunName                *string                 `json:"runName,omitempty"`
	SuiteId                *int64                  `json:"suiteId,omitempty"`
	TestcaseId             *int64                  `json:"testcaseId,omitempty"`
	LastExecutedTestcaseId *int64                  `json:"lastExecutedTestcaseId,omitempty"`
	LoadQueues             map[string]int64        `json:"loadQueues"`
}

// ListRunsParams defines parameters for ListRuns.
type ListRunsParams struct {
	Name     *string `form:"name,omitempty" json:"name,omitempty"`
	OnlyOpen *bool   `form:"onlyOpen,omitempty" json:"onlyOpen,omitempty"`
	Page     *int    `form:"page,omitempty" json:"page,omitempty"`
	PageSize *int    `form:"pageSize,omitempty" json:"pageSize,omitempty"`
}

type Run struct {
	Id          int64             `json:"id"`
	Name        string            `json:"name"`
	OsName      string            `json:"osName"`
	ProductName string            `json:"productName"`
	VersionName string            `json:"versionName"`
	BuildName   string            `json:"buildName"`
	HostName    string            `json:"hostName"`
	UserNote    string            `json:"userNote"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     *time.Time        `json:"endTime,omitempty"`
	Metainfo    map[string]string `json:"metainfo,omitempty"`
}

type RunList struct {
	Page int   `json:"page"`
	Runs []Run `json:"runs"`
}

type Testcase struct {
	Id           int64      `json:"id"`
	SuiteId      int64      `json:"suiteId"`
	SuiteName    string     `json:"suiteName"`
	ScenarioName string     `json:"scenarioName"`
	Name         string     `json:"name"`
	Result       string     `json:"result"`
	UserNote     string     `json:"userNote"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
}

type RunDetails struct {
	Run       Run        `json:"run"`
	Testcases []Testcase `json:"testcases"`
}

type AgentStatus struct {
	Id            string                  `json:"id"`
	Version       string                  `json:"version"`
	StartedAt     time.Time               `json:"startedAt"`
	LiveResources int                     `json:"liveResources"`
	LifeCycle     ProcessorStateLifeCycle `json:"lifeCycle"`
}
