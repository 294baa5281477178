package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/action-agent/internal/metrics"
	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/internal/registry"
	"github.com/kubev2v/action-agent/pkg/actions"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
	"github.com/kubev2v/action-agent/pkg/scheduler"
)

// ActionService exposes the resource registry to remote callers.
// Invocations run on the scheduler's workers.
type ActionService struct {
	registry  *registry.Registry
	repo      *actions.Repository
	scheduler *scheduler.Scheduler
}

func NewActionService(reg *registry.Registry, repo *actions.Repository, s *scheduler.Scheduler) *ActionService {
	return &ActionService{
		registry:  reg,
		repo:      repo,
		scheduler: s,
	}
}

// Initialize builds a new component instance for the session and returns its handle.
func (a *ActionService) Initialize(ctx context.Context, sessionID string, d models.ActionDescriptor) (models.Handle, error) {
	h, err := a.registry.Register(sessionID, d)
	if err != nil {
		zap.S().Named("action_service").Debugw("failed to initialize resource", "session", sessionID, "descriptor", d.String(), "error", err)
		return 0, err
	}
	metrics.SetLiveResources(a.registry.Len())

	zap.S().Named("action_service").Debugw("resource initialized", "session", sessionID, "component", d.Component, "handle", h)

	return h, nil
}

// Execute runs an action of a live resource and waits for its result.
//
// When ctx is done first, Execute returns ctx.Err() and the action keeps
// running on its worker until it returns.
func (a *ActionService) Execute(ctx context.Context, sessionID string, h models.Handle, d models.ActionDescriptor) (any, error) {
	component := d.Component
	if component == "" {
		component = a.componentOf(sessionID, h)
	}

	future := a.scheduler.AddWork(func(ctx context.Context) (any, error) {
		start := time.Now()
		v, err := a.registry.Invoke(sessionID, h, d)

		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = srvErrors.Kind(err)
		}
		metrics.ObserveInvocation(component, d.Method, outcome, time.Since(start))

		return v, err
	})

	result, err := future.Wait(ctx)
	if err != nil {
		zap.S().Named("action_service").Warnw("caller stopped waiting for action", "handle", h, "method", d.Method, "error", err)
		return nil, err
	}

	return result.Data, result.Err
}

func (a *ActionService) componentOf(sessionID string, h models.Handle) string {
	for _, info := range a.registry.List(sessionID) {
		if info.Handle == h {
			return info.Component
		}
	}
	return "unknown"
}

// Deinitialize drops a single resource.
func (a *ActionService) Deinitialize(ctx context.Context, sessionID string, h models.Handle) (models.Handle, error) {
	removed, err := a.registry.Unregister(sessionID, h)
	if err != nil {
		return 0, err
	}
	metrics.SetLiveResources(a.registry.Len())

	return removed, nil
}

// DeinitializeSession drops every resource of the session.
func (a *ActionService) DeinitializeSession(ctx context.Context, sessionID string) []models.Handle {
	removed := a.registry.UnregisterAllForSession(sessionID)
	metrics.SetLiveResources(a.registry.Len())

	if len(removed) > 0 {
		zap.S().Named("action_service").Infow("session resources released", "session", models.SessionOrDefault(sessionID), "count", len(removed))
	}

	return removed
}

func (a *ActionService) ListResources(sessionID string) []models.ResourceInfo {
	return a.registry.List(sessionID)
}

func (a *ActionService) LiveResources() int {
	return a.registry.Len()
}

func (a *ActionService) Components() []actions.ComponentInfo {
	return a.repo.Components()
}
