package gateway

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcessStats is a resource snapshot of the running gateway process,
// surfaced to the frontend's diagnostics pane.
type ProcessStats struct {
	PID           int32                `json:"pid"`
	Name          string               `json:"name"`
	Status        []string             `json:"status"`
	Cmdline       []string             `json:"cmdline"`
	CPUPercent    float64              `json:"cpuPercent"`
	MemoryPercent float32              `json:"memoryPercent"`
	NumThreads    int32                `json:"numThreads"`
	Connections   []net.ConnectionStat `json:"connections"`
	// Uptime in milliseconds
	Uptime int64 `json:"uptime"`
}

func newProcessStats(pid int32) (*ProcessStats, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("gateway process %d: %w", pid, err)
	}

	name, err := p.Name()
	if err != nil {
		return nil, fmt.Errorf("gateway process %d name: %w", pid, err)
	}

	// Everything below is best-effort; partial stats beat no stats.
	status, err := p.Status()
	if err != nil {
		status = []string{}
	}

	cmdline, err := p.CmdlineSlice()
	if err != nil {
		cmdline = []string{}
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		cpuPercent = 0
	}

	memPercent, err := p.MemoryPercent()
	if err != nil {
		memPercent = 0
	}

	numThreads, err := p.NumThreads()
	if err != nil {
		numThreads = 0
	}

	connections, err := p.Connections()
	if err != nil || len(connections) == 0 {
		connections = []net.ConnectionStat{}
	}

	var uptime int64
	if createTime, err := p.CreateTime(); err == nil {
		uptime = time.Now().UnixMilli() - createTime
	}

	return &ProcessStats{
		PID:           pid,
		Name:          name,
		Status:        status,
		Cmdline:       cmdline,
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
		NumThreads:    numThreads,
		Connections:   connections,
		Uptime:        uptime,
	}, nil
}
