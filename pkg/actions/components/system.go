package components

import (
	"os"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/kubev2v/action-agent/pkg/actions"
)

// System reports information about the agent host.
type System struct{}

type MemoryUsage struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

func SystemComponent() actions.Component {
	return actions.Component{
		Name: "system",
		New:  func() (any, error) { return &System{}, nil },
		Actions: []actions.Action{
			actions.Func0("getHostname", (*System).Hostname),
			actions.Func0("getOperatingSystemType", (*System).OperatingSystemType),
			actions.Func0("getCpuCount", (*System).CPUCount),
			actions.Func0("getMemoryUsage", (*System).MemoryUsage),
			actions.Func1("getEnvironmentVariable", (*System).EnvironmentVariable),
		},
	}
}

func (s *System) Hostname() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", err
	}
	return info.Hostname, nil
}

// OperatingSystemType returns the OS family followed by the platform, e.g. "linux/fedora".
func (s *System) OperatingSystemType() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", err
	}
	if info.Platform == "" {
		return info.OS, nil
	}
	return info.OS + "/" + info.Platform, nil
}

func (s *System) CPUCount() (int32, error) {
	n, err := cpu.Counts(true)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func (s *System) MemoryUsage() (MemoryUsage, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return MemoryUsage{}, err
	}
	return MemoryUsage{Total: vm.Total, Used: vm.Used, UsedPercent: vm.UsedPercent}, nil
}

// EnvironmentVariable returns an empty string for unset variables.
func (s *System) EnvironmentVariable(name string) (string, error) {
	return os.Getenv(name), nil
}
