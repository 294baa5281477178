// Package errors provides custom error types for the action agent.
//
// Each error type includes a constructor, Error() method, a Kind() method
// naming the error in API payloads, and a type-checking helper using
// errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌──────────────────────────────┬────────┬──────────────────────────────────────────┐
//	│ Error Type                   │ HTTP   │ Description                              │
//	├──────────────────────────────┼────────┼──────────────────────────────────────────┤
//	│ NoSuchComponentError         │ 404    │ Component name not registered            │
//	│ NoSuchActionError            │ 404    │ Component has no action with that name   │
//	│ NoCompatibleMethodError      │ 404    │ No overload matches the parameter types  │
//	│ ResourceNotFoundError        │ 404    │ Unknown, deleted or foreign handle       │
//	│ ArgumentDeserializationError │ 400    │ Argument count or value mismatch         │
//	│ NoSuchTypeError              │ 400    │ Argument type name does not resolve      │
//	│ InvalidArgumentError         │ 400    │ Request is semantically wrong            │
//	│ AgentUnauthorizedError       │ 401    │ Missing or invalid bearer token          │
//	│ IncorrectProcessorStateError │ 409    │ Event out of lifecycle order             │
//	│ IncorrectScenarioTypeError   │ 409    │ Event needs a different scenario type    │
//	│ UnsupportedEventError        │ 400    │ Unknown event type                       │
//	│ InstantiationError           │ 500    │ Component constructor failed             │
//	│ ActionExecutionError         │ 500    │ The action itself returned an error      │
//	└──────────────────────────────┴────────┴──────────────────────────────────────────┘
//
// # ResourceNotFoundError
//
// Returned for registry handles that were never issued, were already
// unregistered, or belong to a different session. The three cases are
// deliberately indistinguishable to the caller.
//
// Constructors:
//   - NewResourceNotFoundError(kind, id string)
//   - NewNoSuchResourceError(handle uint64)
//   - NewRunNotFoundError(id int64)
//
// # ActionExecutionError
//
// Wraps whatever the action returned. The wrapped error stays reachable
// through errors.Unwrap / errors.As:
//
//	var pathErr *fs.PathError
//	if errors.As(err, &pathErr) { ... }
//
// # IncorrectProcessorStateError
//
// Carries the event name together with the expected and the actual
// lifecycle state:
//
//	cannot process event 'EndRun': expected state RUN_STARTED, actual state TEST_CASE_STARTED
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As:
//
//	wrapped := fmt.Errorf("execute: %w", errors.NewNoSuchResourceError(3))
//	errors.IsResourceNotFoundError(wrapped) // returns true
//
// Kind(err) returns the payload kind of the first typed error in the chain,
// or "InternalError" when there is none.
package errors
