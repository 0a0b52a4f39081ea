// Package cpu implements the CPU backend for the Axon indexing kernels.
package cpu

import (
	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// CPUBackend implements the indexing kernels in pure Go, parallelized
// across output elements.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// NewSequential creates a CPU backend that runs kernels on a single goroutine.
// Useful for deterministic profiling and small workloads.
func NewSequential() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.Config{},
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
