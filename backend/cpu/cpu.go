// Copyright 2026 Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/axon-ml/axon/internal/backend/cpu"
	"github.com/axon-ml/axon/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend provides pure Go implementations of the indexing kernels,
// parallelized across output elements.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/axon-ml/axon/backend/cpu"
//	    "github.com/axon-ml/axon/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewSequential creates a CPU backend without worker parallelism.
func NewSequential() *Backend {
	return internalcpu.NewSequential()
}
