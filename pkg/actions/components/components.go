// Package components holds the action components built into the agent.
package components

import "github.com/kubev2v/action-agent/pkg/actions"

// Register adds every built-in component to repo. filesystemRoot anchors
// relative paths of the filesystem component.
func Register(repo *actions.Repository, filesystemRoot string) error {
	for _, c := range []actions.Component{
		EchoComponent(),
		FileSystemComponent(filesystemRoot),
		SystemComponent(),
	} {
		if err := repo.AddComponent(c); err != nil {
			return err
		}
	}
	return nil
}
