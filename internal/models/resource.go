package models

import (
	"fmt"
	"time"
)

// DefaultSessionID scopes requests that carry no session identifier.
const DefaultSessionID = "default"

// Handle identifies a live resource. Handles are never reused.
type Handle uint64

func (h Handle) String() string {
	return fmt.Sprintf("%d", uint64(h))
}

// ActionDescriptor identifies a remote operation: a component, one of its
// actions and the ordered argument types/values. Values are JSON documents,
// one per declared type.
type ActionDescriptor struct {
	Component      string
	Method         string
	ArgumentTypes  []string
	ArgumentValues []string
}

func (d ActionDescriptor) String() string {
	return fmt.Sprintf("%s@%s%v", d.Component, d.Method, d.ArgumentTypes)
}

// ResourceEntry is a live resource owned by a session.
type ResourceEntry struct {
	Handle    Handle
	SessionID string
	Component string
	Value     any
	CreatedAt time.Time
}

// ResourceInfo is the read-only view of a ResourceEntry handed out to callers.
type ResourceInfo struct {
	Handle    Handle
	SessionID string
	Component string
	CreatedAt time.Time
}

func (e *ResourceEntry) Info() ResourceInfo {
	return ResourceInfo{
		Handle:    e.Handle,
		SessionID: e.SessionID,
		Component: e.Component,
		CreatedAt: e.CreatedAt,
	}
}

// SessionOrDefault returns DefaultSessionID for an empty session id.
func SessionOrDefault(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}
