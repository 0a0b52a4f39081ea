// Copyright 2026 Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernels exposes the kernel registry: the surface a host framework
// uses to discover and invoke the indexing kernels by name.
//
// Example:
//
//	reg := kernels.NewRegistry()
//	ctx := &kernels.Context{Backend: cpu.New()}
//	out, err := reg.Execute(ctx, kernels.OpTakeAlongAxis, kernels.Args{
//	    Input: src, Index: idx, Axis: 0,
//	})
package kernels

import (
	internalkernels "github.com/axon-ml/axon/internal/kernels"
)

// Kernel names.
const (
	OpTakeAlongAxis = internalkernels.OpTakeAlongAxis
	OpPutAlongAxis  = internalkernels.OpPutAlongAxis
	OpEmbedding     = internalkernels.OpEmbedding
)

// Registry maps (kernel name, device) pairs to registrations.
type Registry = internalkernels.Registry

// Context provides the backend an invocation executes on.
type Context = internalkernels.Context

// Args carries the operands of an indexing kernel invocation.
type Args = internalkernels.Args

// Handler executes a kernel and returns the output tensor.
type Handler = internalkernels.Handler

// Registration binds a kernel name on a device to a handler and dtype set.
type Registration = internalkernels.Registration

// InvalidArgumentError reports an invocation rejected before execution.
type InvalidArgumentError = internalkernels.InvalidArgumentError

// Sentinel errors, matchable with errors.Is.
var (
	ErrUnknownKernel    = internalkernels.ErrUnknownKernel
	ErrUnsupportedDType = internalkernels.ErrUnsupportedDType
	ErrInvalidIndexType = internalkernels.ErrInvalidIndexType
)

// NewRegistry creates a registry with all built-in kernels registered.
func NewRegistry() *Registry {
	return internalkernels.NewRegistry()
}
