package models

import "time"

// Configuration is the agent state persisted across restarts.
type Configuration struct {
	AgentID string
}

// AgentStatus describes the running agent.
type AgentStatus struct {
	ID            string
	Version       string
	StartedAt     time.Time
	LiveResources int
	LifeCycle     LifeCycleState
}
