package components

import (
	"errors"

	"github.com/kubev2v/action-agent/pkg/actions"
)

// Echo is a stateless component used to check that the agent is reachable
// and that arguments survive the round trip.
type Echo struct{}

func EchoComponent() actions.Component {
	return actions.Component{
		Name: "echo",
		New:  func() (any, error) { return &Echo{}, nil },
		Actions: []actions.Action{
			actions.Func0("ping", (*Echo).Ping),
			actions.Func1("echo", (*Echo).Echo),
			actions.Func2("add", (*Echo).Add),
			actions.Proc1("fail", (*Echo).Fail),
		},
	}
}

func (e *Echo) Ping() (string, error) {
	return "pong", nil
}

func (e *Echo) Echo(s string) (string, error) {
	return s, nil
}

func (e *Echo) Add(a, b int32) (int32, error) {
	return a + b, nil
}

// Fail always returns an error carrying msg.
func (e *Echo) Fail(msg string) error {
	return errors.New(msg)
}
