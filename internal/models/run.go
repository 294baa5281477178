package models

import "time"

// Run is a persisted test run.
type Run struct {
	ID          int64
	Name        string
	OSName      string
	ProductName string
	VersionName string
	BuildName   string
	HostName    string
	UserNote    string
	StartTime   time.Time
	EndTime     *time.Time
	Metainfo    map[string]string
}

type Suite struct {
	ID          int64
	RunID       int64
	Name        string
	PackageName string
	UserNote    string
	StartTime   time.Time
	EndTime     *time.Time
}

type Testcase struct {
	ID                  int64
	SuiteID             int64
	SuiteName           string
	ScenarioName        string
	ScenarioDescription string
	Name                string
	UserNote            string
	Result              TestResult
	StartTime           time.Time
	EndTime             *time.Time
}

type Message struct {
	ID         int64
	RunID      int64
	SuiteID    *int64
	TestcaseID *int64
	Level      string
	Message    string
	Thread     string
	HostName   string
	Timestamp  time.Time
}

type LoadQueue struct {
	ID          int64
	TestcaseID  int64
	Name        string
	HostName    string
	ThreadCount int
	Result      TestResult
	StartTime   time.Time
	EndTime     *time.Time
}
