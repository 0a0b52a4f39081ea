// Copyright 2026 Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated indexing
// kernels.
//
// WebGPU is a cross-platform graphics and compute API that works on Windows
// (D3D12), macOS (Metal), and Linux (Vulkan). The backend executes the
// kernels as WGSL compute shaders, one invocation per output element.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err) // no adapter available
//	}
//	defer gpu.Release()
//
//	out := gpu.TakeAlongAxis(x, 0, idx)
package webgpu

import (
	internalwebgpu "github.com/axon-ml/axon/internal/backend/webgpu"
	"github.com/axon-ml/axon/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
