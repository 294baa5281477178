// Package handlers implements the HTTP API layer of the action agent.
//
// Handlers validate requests, delegate to the services layer and map typed
// errors to HTTP status codes. They hold no state of their own.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request binding and validation (typename rule)               │
//	│  - Query/path parameter binding                                 │
//	│  - Error kind to HTTP status mapping                            │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  ActionService │ EventService │ ReportService                   │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// Action Endpoints (actions.go, sessions.go):
//
//	┌────────┬──────────────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint                 │ Description                          │
//	├────────┼──────────────────────────┼──────────────────────────────────────┤
//	│ PUT    │ /actions                 │ Create a resource, returns its id    │
//	│ POST   │ /actions/execute         │ Run an action of a resource          │
//	│ DELETE │ /actions                 │ Drop a resource                      │
//	│ GET    │ /components              │ Component and action catalogue       │
//	│ GET    │ /sessions/{id}/resources │ Live resources of a session          │
//	│ DELETE │ /sessions/{id}/resources │ Drop every resource of a session     │
//	└────────┴──────────────────────────┴──────────────────────────────────────┘
//
// Event Endpoints (events.go):
//
//	┌────────┬──────────────────┬──────────────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                                  │
//	├────────┼──────────────────┼──────────────────────────────────────────────┤
//	│ POST   │ /events          │ Gate and apply a logging event               │
//	│ GET    │ /events/state    │ Current processor state                      │
//	│ PUT    │ /testcases       │ Join a testcase started elsewhere            │
//	│ DELETE │ /testcases       │ Leave the testcase, release session resources│
//	└────────┴──────────────────┴──────────────────────────────────────────────┘
//
// Run Endpoints (runs.go):
//
//	┌────────┬──────────────────┬──────────────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                                  │
//	├────────┼──────────────────┼──────────────────────────────────────────────┤
//	│ GET    │ /runs            │ List runs (name, onlyOpen, page, pageSize)   │
//	│ GET    │ /runs/{id}       │ Run with its testcases                       │
//	│ GET    │ /runs/{id}/report│ XLSX workbook of the run                     │
//	└────────┴──────────────────┴──────────────────────────────────────────────┘
//
// # Action Handler
//
// PUT /actions:
//
//	{ "sessionId": "s1", "component": "echo" }
//
// Response:
//
//	{ "resourceId": 0 }
//
// POST /actions/execute:
//
//	{
//	    "sessionId": "s1",
//	    "resourceId": 0,
//	    "method": "add",
//	    "argumentTypes": ["int", "int.class"],
//	    "argumentValues": ["1", "2"]
//	}
//
// Response:
//
//	{ "actionResult": 3 }
//
// A request without sessionId belongs to the "default" session.
//
// # Errors
//
// Every failure answers with:
//
//	{ "error": "resource '7' not found", "kind": "NoSuchResource" }
//
// Status codes:
//   - 400: InvalidArgument, ArgumentDeserializationError, NoSuchType, UnsupportedEvent
//   - 401: AgentUnauthorized
//   - 404: NoSuchComponent, NoSuchAction, NoCompatibleMethod, NoSuchResource
//   - 409: IncorrectProcessorState, IncorrectScenarioType
//   - 500: InstantiationFailure, ActionExecutionException, anything untyped
//   - 504: the caller stopped waiting for an action
package handlers
