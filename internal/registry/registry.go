package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/action-agent/internal/models"
	"github.com/kubev2v/action-agent/pkg/actions"
	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// Registry holds the live resources of every session.
//
// All structural operations take the same lock. Actions run outside of it,
// so invocations on different handles proceed concurrently.
type Registry struct {
	mu      sync.Mutex
	entries map[models.Handle]*models.ResourceEntry
	next    models.Handle
	repo    *actions.Repository
	now     func() time.Time
}

func New(repo *actions.Repository) *Registry {
	return &Registry{
		entries: make(map[models.Handle]*models.ResourceEntry),
		repo:    repo,
		now:     time.Now,
	}
}

// Register resolves the descriptor, builds a new component instance and stores it.
// When the descriptor names a method it must resolve too.
func (r *Registry) Register(sessionID string, d models.ActionDescriptor) (models.Handle, error) {
	var (
		c   actions.Component
		err error
	)
	if d.Method == "" {
		c, err = r.repo.Component(d.Component)
	} else {
		c, _, err = r.repo.Resolve(d.Component, d.Method, d.ArgumentTypes)
	}
	if err != nil {
		return 0, err
	}

	instance, err := r.repo.Instantiate(c)
	if err != nil {
		return 0, err
	}

	h := r.store(sessionID, c.Name, instance)
	zap.S().Named("registry").Debugw("resource registered", "handle", h, "session", models.SessionOrDefault(sessionID), "component", c.Name)

	return h, nil
}

// RegisterValue stores an already built value. component may be empty when the
// value is not a component instance.
func (r *Registry) RegisterValue(sessionID, component string, value any) models.Handle {
	h := r.store(sessionID, component, value)
	zap.S().Named("registry").Debugw("value registered", "handle", h, "session", models.SessionOrDefault(sessionID), "type", fmt.Sprintf("%T", value))
	return h
}

func (r *Registry) store(sessionID, component string, value any) models.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	r.next++
	r.entries[h] = &models.ResourceEntry{
		Handle:    h,
		SessionID: models.SessionOrDefault(sessionID),
		Component: component,
		Value:     value,
		CreatedAt: r.now(),
	}
	return h
}

// Invoke calls an action on the resource behind handle.
func (r *Registry) Invoke(sessionID string, h models.Handle, d models.ActionDescriptor) (any, error) {
	if len(d.ArgumentTypes) != len(d.ArgumentValues) {
		return nil, srvErrors.NewArgumentCountMismatchError(len(d.ArgumentTypes), len(d.ArgumentValues))
	}

	entry, err := r.lookup(sessionID, h)
	if err != nil {
		return nil, err
	}

	component := entry.Component
	if d.Component != "" {
		if component != "" && component != d.Component {
			return nil, srvErrors.NewInvalidArgumentError("resource %d is a '%s' resource, not '%s'", h, component, d.Component)
		}
		component = d.Component
	}

	_, action, err := r.repo.Resolve(component, d.Method, d.ArgumentTypes)
	if err != nil {
		return nil, err
	}

	args, err := r.repo.Types().DecodeAll(d.ArgumentTypes, d.ArgumentValues)
	if err != nil {
		return nil, err
	}

	return call(component, action, entry.Value, args)
}

func call(component string, action actions.Action, instance any, args []any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = srvErrors.NewActionExecutionError(component, action.Name, fmt.Errorf("panic: %v", rec))
		}
	}()

	result, err = action.Fn(instance, args)
	if err != nil {
		if srvErrors.IsArgumentDeserializationError(err) {
			return nil, err
		}
		return nil, srvErrors.NewActionExecutionError(component, action.Name, err)
	}
	return result, nil
}

func (r *Registry) lookup(sessionID string, h models.Handle) (*models.ResourceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.entries[h]
	if !found || entry.SessionID != models.SessionOrDefault(sessionID) {
		return nil, srvErrors.NewNoSuchResourceError(uint64(h))
	}
	return entry, nil
}

// Unregister removes a resource. Handles of other sessions are reported as missing.
func (r *Registry) Unregister(sessionID string, h models.Handle) (models.Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, found := r.entries[h]
	if !found || entry.SessionID != models.SessionOrDefault(sessionID) {
		return 0, srvErrors.NewNoSuchResourceError(uint64(h))
	}
	delete(r.entries, h)

	zap.S().Named("registry").Debugw("resource unregistered", "handle", h, "session", entry.SessionID)

	return h, nil
}

// UnregisterAllForSession removes every resource of a session and returns
// their handles in ascending order.
func (r *Registry) UnregisterAllForSession(sessionID string) []models.Handle {
	sessionID = models.SessionOrDefault(sessionID)

	r.mu.Lock()
	removed := []models.Handle{}
	for h, entry := range r.entries {
		if entry.SessionID == sessionID {
			removed = append(removed, h)
			delete(r.entries, h)
		}
	}
	r.mu.Unlock()

	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	if len(removed) > 0 {
		zap.S().Named("registry").Debugw("session resources unregistered", "session", sessionID, "count", len(removed))
	}

	return removed
}

// List returns the live resources of a session ordered by handle.
func (r *Registry) List(sessionID string) []models.ResourceInfo {
	sessionID = models.SessionOrDefault(sessionID)

	r.mu.Lock()
	infos := []models.ResourceInfo{}
	for _, entry := range r.entries {
		if entry.SessionID == sessionID {
			infos = append(infos, entry.Info())
		}
	}
	r.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Handle < infos[j].Handle })
	return infos
}

// Len returns the number of live resources across sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
