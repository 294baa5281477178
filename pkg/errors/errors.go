package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds reported in the structured error payload.
const (
	KindNoSuchComponent         = "NoSuchComponent"
	KindNoSuchAction            = "NoSuchAction"
	KindNoCompatibleMethod      = "NoCompatibleMethod"
	KindComponentAlreadyDefined = "ComponentAlreadyDefined"
	KindInstantiationFailure    = "InstantiationFailure"
	KindNoSuchResource          = "NoSuchResource"
	KindArgumentDeserialization = "ArgumentDeserializationError"
	KindNoSuchType              = "NoSuchType"
	KindActionExecution         = "ActionExecutionException"
	KindIncorrectProcessorState = "IncorrectProcessorState"
	KindIncorrectScenarioType   = "IncorrectScenarioType"
	KindUnsupportedEvent        = "UnsupportedEvent"
	KindInvalidArgument         = "InvalidArgument"
	KindAgentUnauthorized       = "AgentUnauthorized"
	KindInternal                = "InternalError"
)

// Kind returns the payload kind of err, or KindInternal for untyped errors.
func Kind(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// NoSuchComponentError indicates no component is registered under the requested name.
type NoSuchComponentError struct {
	Component string
}

func NewNoSuchComponentError(component string) *NoSuchComponentError {
	return &NoSuchComponentError{Component: component}
}

func (e *NoSuchComponentError) Error() string {
	return fmt.Sprintf("no component named '%s'", e.Component)
}

func (e *NoSuchComponentError) Kind() string { return KindNoSuchComponent }

func IsNoSuchComponentError(err error) bool {
	var e *NoSuchComponentError
	return errors.As(err, &e)
}

// NoSuchActionError indicates the component has no action with the requested name.
type NoSuchActionError struct {
	Component string
	Action    string
}

func NewNoSuchActionError(component, action string) *NoSuchActionError {
	return &NoSuchActionError{Component: component, Action: action}
}

func (e *NoSuchActionError) Error() string {
	return fmt.Sprintf("component '%s' has no action '%s'", e.Component, e.Action)
}

func (e *NoSuchActionError) Kind() string { return KindNoSuchAction }

func IsNoSuchActionError(err error) bool {
	var e *NoSuchActionError
	return errors.As(err, &e)
}

// NoCompatibleMethodError indicates the action exists but none of its
// overloads accepts the requested parameter types.
type NoCompatibleMethodError struct {
	Component  string
	Action     string
	ParamTypes []string
}

func NewNoCompatibleMethodError(component, action string, paramTypes []string) *NoCompatibleMethodError {
	return &NoCompatibleMethodError{Component: component, Action: action, ParamTypes: paramTypes}
}

func (e *NoCompatibleMethodError) Error() string {
	return fmt.Sprintf("no compatible method '%s(%s)' in component '%s'", e.Action, strings.Join(e.ParamTypes, ", "), e.Component)
}

func (e *NoCompatibleMethodError) Kind() string { return KindNoCompatibleMethod }

func IsNoCompatibleMethodError(err error) bool {
	var e *NoCompatibleMethodError
	return errors.As(err, &e)
}

// ComponentAlreadyDefinedError indicates a second component was added under an existing name.
type ComponentAlreadyDefinedError struct {
	Component string
}

func NewComponentAlreadyDefinedError(component string) *ComponentAlreadyDefinedError {
	return &ComponentAlreadyDefinedError{Component: component}
}

func (e *ComponentAlreadyDefinedError) Error() string {
	return fmt.Sprintf("component '%s' is already defined", e.Component)
}

func (e *ComponentAlreadyDefinedError) Kind() string { return KindComponentAlreadyDefined }

func IsComponentAlreadyDefinedError(err error) bool {
	var e *ComponentAlreadyDefinedError
	return errors.As(err, &e)
}

// InstantiationError indicates the constructor of a component failed.
type InstantiationError struct {
	Component string
	Cause     error
}

func NewInstantiationError(component string, cause error) *InstantiationError {
	return &InstantiationError{Component: component, Cause: cause}
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate component '%s': %v", e.Component, e.Cause)
}

func (e *InstantiationError) Unwrap() error { return e.Cause }

func (e *InstantiationError) Kind() string { return KindInstantiationFailure }

func IsInstantiationError(err error) bool {
	var e *InstantiationError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
// Handles that never existed, were deleted or belong to another session
// all produce the same error.
type ResourceNotFoundError struct {
	Resource string
	ID       string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Resource: kind, ID: id}
}

func NewNoSuchResourceError(handle uint64) *ResourceNotFoundError {
	return NewResourceNotFoundError("resource", fmt.Sprintf("%d", handle))
}

func NewRunNotFoundError(id int64) *ResourceNotFoundError {
	return NewResourceNotFoundError("run", fmt.Sprintf("%d", id))
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

func (e *ResourceNotFoundError) Kind() string { return KindNoSuchResource }

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// ArgumentDeserializationError indicates the argument list is malformed or
// one of the values cannot be converted into its declared type.
type ArgumentDeserializationError struct {
	msg string
}

func NewArgumentDeserializationError(format string, args ...any) *ArgumentDeserializationError {
	return &ArgumentDeserializationError{msg: fmt.Sprintf(format, args...)}
}

func NewArgumentCountMismatchError(types, values int) *ArgumentDeserializationError {
	return NewArgumentDeserializationError("provided %d argument types and %d argument values", types, values)
}

func (e *ArgumentDeserializationError) Error() string {
	return e.msg
}

func (e *ArgumentDeserializationError) Kind() string { return KindArgumentDeserialization }

func IsArgumentDeserializationError(err error) bool {
	var e *ArgumentDeserializationError
	return errors.As(err, &e)
}

// NoSuchTypeError indicates an argument type name that does not resolve to a known type.
type NoSuchTypeError struct {
	TypeName string
}

func NewNoSuchTypeError(typeName string) *NoSuchTypeError {
	return &NoSuchTypeError{TypeName: typeName}
}

func (e *NoSuchTypeError) Error() string {
	return fmt.Sprintf("unknown argument type '%s'", e.TypeName)
}

func (e *NoSuchTypeError) Kind() string { return KindNoSuchType }

func IsNoSuchTypeError(err error) bool {
	var e *NoSuchTypeError
	return errors.As(err, &e)
}

// ActionExecutionError wraps an error returned (or a panic raised) by an action.
type ActionExecutionError struct {
	Component string
	Action    string
	Cause     error
}

func NewActionExecutionError(component, action string, cause error) *ActionExecutionError {
	return &ActionExecutionError{Component: component, Action: action, Cause: cause}
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action '%s@%s' failed: %v", e.Component, e.Action, e.Cause)
}

func (e *ActionExecutionError) Unwrap() error { return e.Cause }

func (e *ActionExecutionError) Kind() string { return KindActionExecution }

func IsActionExecutionError(err error) bool {
	var e *ActionExecutionError
	return errors.As(err, &e)
}

// IncorrectProcessorStateError indicates an event arrived in a lifecycle state
// that does not allow it.
type IncorrectProcessorStateError struct {
	Event    string
	Expected string
	Actual   string
}

func NewIncorrectProcessorStateError(event, expected, actual string) *IncorrectProcessorStateError {
	return &IncorrectProcessorStateError{Event: event, Expected: expected, Actual: actual}
}

func (e *IncorrectProcessorStateError) Error() string {
	return fmt.Sprintf("cannot process event '%s': expected state %s, actual state %s", e.Event, e.Expected, e.Actual)
}

func (e *IncorrectProcessorStateError) Kind() string { return KindIncorrectProcessorState }

func IsIncorrectProcessorStateError(err error) bool {
	var e *IncorrectProcessorStateError
	return errors.As(err, &e)
}

// IncorrectScenarioTypeError indicates an event that requires a particular
// scenario type (e.g. checkpoints need a running load queue).
type IncorrectScenarioTypeError struct {
	Event    string
	Expected string
	Actual   string
}

func NewIncorrectScenarioTypeError(event, expected, actual string) *IncorrectScenarioTypeError {
	return &IncorrectScenarioTypeError{Event: event, Expected: expected, Actual: actual}
}

func (e *IncorrectScenarioTypeError) Error() string {
	return fmt.Sprintf("cannot process event '%s': expected scenario type %s, actual scenario type %s", e.Event, e.Expected, e.Actual)
}

func (e *IncorrectScenarioTypeError) Kind() string { return KindIncorrectScenarioType }

func IsIncorrectScenarioTypeError(err error) bool {
	var e *IncorrectScenarioTypeError
	return errors.As(err, &e)
}

// UnsupportedEventError indicates an event type the processor does not know.
type UnsupportedEventError struct {
	Event string
}

func NewUnsupportedEventError(event string) *UnsupportedEventError {
	return &UnsupportedEventError{Event: event}
}

func (e *UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported logging event of type '%s'", e.Event)
}

func (e *UnsupportedEventError) Kind() string { return KindUnsupportedEvent }

func IsUnsupportedEventError(err error) bool {
	var e *UnsupportedEventError
	return errors.As(err, &e)
}

// InvalidArgumentError indicates a request that is well formed but semantically wrong.
type InvalidArgumentError struct {
	msg string
}

func NewInvalidArgumentError(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{msg: fmt.Sprintf(format, args...)}
}

func NewLoadQueueAlreadyStartedError(name string) *InvalidArgumentError {
	return NewInvalidArgumentError("load queue '%s' is already started", name)
}

func NewNoSuchLoadQueueError(name string) *InvalidArgumentError {
	return NewInvalidArgumentError("no load queue named '%s' is running", name)
}

func (e *InvalidArgumentError) Error() string {
	return e.msg
}

func (e *InvalidArgumentError) Kind() string { return KindInvalidArgument }

func IsInvalidArgumentError(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

// AgentUnauthorizedError indicates the caller is not authorized to perform the operation.
type AgentUnauthorizedError struct{}

func NewAgentUnauthorized() *AgentUnauthorizedError {
	return &AgentUnauthorizedError{}
}

func (e *AgentUnauthorizedError) Error() string {
	return "agent not authorized"
}

func (e *AgentUnauthorizedError) Kind() string { return KindAgentUnauthorized }

// IsAgentUnauthorizedError checks if the error is an AgentUnauthorizedError.
func IsAgentUnauthorizedError(err error) bool {
	var e *AgentUnauthorizedError
	return errors.As(err, &e)
}
