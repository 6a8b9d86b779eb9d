// Package monitor samples the memory footprint of the running process.
package monitor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/process"
)

// MemoryUsage is a point-in-time memory reading, in bytes.
type MemoryUsage struct {
	RSS       uint64 `json:"rss"`
	HeapTotal uint64 `json:"heapTotal"`
	HeapUsed  uint64 `json:"heapUsed"`
}

// ProcessSampler reads heap figures from the Go runtime and the resident set
// size from the operating system.
type ProcessSampler struct {
	proc *process.Process
}

func NewProcessSampler() (*ProcessSampler, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}
	return &ProcessSampler{proc: p}, nil
}

// Sample never fails on the heap figures; a failed RSS read is reported
// alongside the partial result.
func (s *ProcessSampler) Sample(ctx context.Context) (MemoryUsage, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	usage := MemoryUsage{
		HeapTotal: ms.HeapSys,
		HeapUsed:  ms.HeapInuse,
	}

	info, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return usage, fmt.Errorf("read rss: %w", err)
	}
	usage.RSS = info.RSS
	return usage, nil
}
