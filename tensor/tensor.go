// Copyright 2026 Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensors in the Axon
// indexing-kernel library.
//
// The package defines core interfaces and types:
//   - Tensor[T, B]: High-level generic tensor with type safety
//   - RawTensor: Low-level tensor for backend and kernel code
//   - Backend: Interface for device-specific compute implementations
//   - Shape, DataType, Device: Core type definitions
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromSlice([]float32{10, 20, 30, 40}, tensor.Shape{4}, backend)
//	idx, _ := tensor.FromSlice([]int32{3, 0, 1}, tensor.Shape{3}, backend)
//	out := x.TakeAlongAxis(0, idx.Raw()) // [40, 10, 20]
package tensor

import (
	"github.com/axon-ml/axon/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64, float16, bfloat16.
type DType = tensor.DType

// IndexType is a constraint for index tensor element types (int32, int64).
type IndexType = tensor.IndexType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32  DataType = tensor.Float32
	Float64  DataType = tensor.Float64
	Int32    DataType = tensor.Int32
	Int64    DataType = tensor.Int64
	Float16  DataType = tensor.Float16
	BFloat16 DataType = tensor.BFloat16
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation backends operate on.
type RawTensor = tensor.RawTensor

// Backend is the interface compute backends implement; see backend/cpu and
// backend/webgpu.
type Backend = tensor.Backend

// Tensor is a generic type-safe tensor.
//
// T is the element type (float32, float64, int32, int64, float16, bfloat16).
// B is the backend implementation (CPU, WebGPU).
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Creation functions

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Arange creates a 1-D tensor with values [0, 1, ..., n-1].
func Arange[T DType, B Backend](n int, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](n, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Full, or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use high-level creation
// functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
