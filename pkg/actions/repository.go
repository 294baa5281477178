package actions

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	srvErrors "github.com/kubev2v/action-agent/pkg/errors"
)

// Component is a zero-argument constructible type and the actions it serves.
type Component struct {
	Name    string
	New     func() (any, error)
	Actions []Action
}

type ComponentInfo struct {
	Name    string
	Actions []ActionInfo
}

type ActionInfo struct {
	Name       string
	ParamTypes []string
	ReturnType string
}

// Repository maps component name, action name and parameter signature to a callable.
// It is filled at startup and only read afterwards.
type Repository struct {
	mu         sync.RWMutex
	types      *TypeRegistry
	components map[string]*entry
}

type entry struct {
	component Component
	actions   map[string][]Action
}

func NewRepository(types *TypeRegistry) *Repository {
	return &Repository{
		types:      types,
		components: make(map[string]*entry),
	}
}

func (r *Repository) Types() *TypeRegistry {
	return r.types
}

// AddComponent registers a component. Parameter type names are canonicalized and,
// for actions built from a Go signature, derived from it.
func (r *Repository) AddComponent(c Component) error {
	if c.Name == "" {
		return srvErrors.NewInvalidArgumentError("component name is empty")
	}
	if c.New == nil {
		return srvErrors.NewInvalidArgumentError("component '%s' has no constructor", c.Name)
	}

	e := &entry{component: c, actions: make(map[string][]Action)}
	for _, a := range c.Actions {
		if err := r.complete(&a); err != nil {
			return fmt.Errorf("component '%s' action '%s': %w", c.Name, a.Name, err)
		}
		for _, other := range e.actions[a.Name] {
			if slices.Equal(other.ParamTypes, a.ParamTypes) {
				return srvErrors.NewInvalidArgumentError("component '%s' declares %s%v twice", c.Name, a.Name, a.ParamTypes)
			}
		}
		e.actions[a.Name] = append(e.actions[a.Name], a)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.components[c.Name]; found {
		return srvErrors.NewComponentAlreadyDefinedError(c.Name)
	}
	r.components[c.Name] = e
	return nil
}

func (r *Repository) complete(a *Action) error {
	if a.Fn == nil {
		return fmt.Errorf("no function")
	}

	if a.ParamTypes == nil && a.goParams != nil {
		for _, p := range a.goParams {
			name, err := r.types.TypeName(p)
			if err != nil {
				return err
			}
			a.ParamTypes = append(a.ParamTypes, name)
		}
	}
	sig, err := r.types.Signature(a.ParamTypes)
	if err != nil {
		return err
	}
	a.ParamTypes = sig

	if a.ReturnType == "" && a.goResult != nil {
		if name, err := r.types.TypeName(a.goResult); err == nil {
			a.ReturnType = name
		} else {
			a.ReturnType = a.goResult.String()
		}
	}
	return nil
}

// Component returns a registered component by name.
func (r *Repository) Component(name string) (Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, found := r.components[name]
	if !found {
		return Component{}, srvErrors.NewNoSuchComponentError(name)
	}
	return e.component, nil
}

// Resolve finds the action matching the descriptor.
func (r *Repository) Resolve(component, action string, paramTypes []string) (Component, Action, error) {
	r.mu.RLock()
	e, found := r.components[component]
	r.mu.RUnlock()
	if !found {
		return Component{}, Action{}, srvErrors.NewNoSuchComponentError(component)
	}

	overloads, found := e.actions[action]
	if !found {
		return Component{}, Action{}, srvErrors.NewNoSuchActionError(component, action)
	}

	sig, err := r.types.Signature(paramTypes)
	if err != nil {
		return Component{}, Action{}, err
	}
	for _, a := range overloads {
		if slices.Equal(a.ParamTypes, sig) {
			return e.component, a, nil
		}
	}
	return Component{}, Action{}, srvErrors.NewNoCompatibleMethodError(component, action, paramTypes)
}

// Instantiate builds a new instance of a component.
func (r *Repository) Instantiate(c Component) (instance any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = srvErrors.NewInstantiationError(c.Name, fmt.Errorf("constructor panicked: %v", rec))
		}
	}()

	instance, err = c.New()
	if err != nil {
		return nil, srvErrors.NewInstantiationError(c.Name, err)
	}
	return instance, nil
}

// Components returns the catalogue sorted by component then action name.
func (r *Repository) Components() []ComponentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]ComponentInfo, 0, len(r.components))
	for name, e := range r.components {
		info := ComponentInfo{Name: name}
		for _, overloads := range e.actions {
			for _, a := range overloads {
				info.Actions = append(info.Actions, ActionInfo{
					Name:       a.Name,
					ParamTypes: a.ParamTypes,
					ReturnType: a.ReturnType,
				})
			}
		}
		sort.Slice(info.Actions, func(i, j int) bool {
			if info.Actions[i].Name != info.Actions[j].Name {
				return info.Actions[i].Name < info.Actions[j].Name
			}
			return strings.Join(info.Actions[i].ParamTypes, ",") < strings.Join(info.Actions[j].ParamTypes, ",")
		})
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
