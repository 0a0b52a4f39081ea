package webgpu

import (
	"testing"

	"github.com/axon-ml/axon/internal/backend/cpu"
	"github.com/axon-ml/axon/internal/tensor"
)

// newTestBackend creates a WebGPU backend or skips the test when no adapter
// is available (headless CI, no GPU drivers).
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := New()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	t.Cleanup(backend.Release)
	return backend
}

func TestBackendIdentity(t *testing.T) {
	backend := newTestBackend(t)

	if backend.Name() != "WebGPU" {
		t.Errorf("Name() = %q, expected %q", backend.Name(), "WebGPU")
	}
	if backend.Device() != tensor.WebGPU {
		t.Errorf("Device() = %v, expected %v", backend.Device(), tensor.WebGPU)
	}
	if backend.AdapterInfo() == nil {
		t.Error("AdapterInfo() = nil, expected adapter description")
	}
}

func TestTakeAlongAxis1D(t *testing.T) {
	backend := newTestBackend(t)

	input, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.WebGPU)
	copy(input.AsFloat32(), []float32{10, 20, 30, 40})

	index, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Int32, tensor.WebGPU)
	copy(index.AsInt32(), []int32{3, 0, 1})

	result := backend.TakeAlongAxis(input, 0, index)

	if !result.Shape().Equal(index.Shape()) {
		t.Fatalf("result shape %v != index shape %v", result.Shape(), index.Shape())
	}
	for i, exp := range []float32{40, 10, 20} {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

func TestTakeAlongAxis2D(t *testing.T) {
	backend := newTestBackend(t)

	input, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.WebGPU)
	copy(input.AsFloat32(), []float32{10, 20, 30, 40, 50, 60})

	index, _ := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Int32, tensor.WebGPU)
	copy(index.AsInt32(), []int32{2, 0, 1, 2})

	result := backend.TakeAlongAxis(input, 1, index)

	for i, exp := range []float32{30, 10, 50, 60} {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

// TestTakeAlongAxisInt64Index covers the host-side narrowing of 64-bit
// indices to the 32-bit width WGSL supports.
func TestTakeAlongAxisInt64Index(t *testing.T) {
	backend := newTestBackend(t)

	input, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.WebGPU)
	copy(input.AsFloat32(), []float32{10, 20, 30, 40})

	index, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, tensor.WebGPU)
	copy(index.AsInt64(), []int64{3, 0, 1})

	result := backend.TakeAlongAxis(input, 0, index)

	for i, exp := range []float32{40, 10, 20} {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

// TestTakeAlongAxisOutOfBounds documents the GPU policy: out-of-bounds
// indices zero-fill instead of faulting the device.
func TestTakeAlongAxisOutOfBounds(t *testing.T) {
	backend := newTestBackend(t)

	input, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.WebGPU)
	copy(input.AsFloat32(), []float32{10, 20, 30})

	index, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Int32, tensor.WebGPU)
	copy(index.AsInt32(), []int32{1, 5, -1})

	result := backend.TakeAlongAxis(input, 0, index)

	for i, exp := range []float32{20, 0, 0} {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

func TestPutAlongAxis(t *testing.T) {
	backend := newTestBackend(t)

	input, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.WebGPU)
	copy(input.AsFloat32(), []float32{10, 20, 30, 40})

	index, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.WebGPU)
	copy(index.AsInt32(), []int32{3, 1})

	values, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, tensor.WebGPU)
	copy(values.AsFloat32(), []float32{-1, -2})

	result := backend.PutAlongAxis(input, 0, index, values)

	for i, exp := range []float32{10, -2, 30, -1} {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
	// Source is untouched.
	for i, exp := range []float32{10, 20, 30, 40} {
		if got := input.AsFloat32()[i]; got != exp {
			t.Errorf("input[%d] mutated: %f, expected %f", i, got, exp)
		}
	}
}

func TestEmbedding(t *testing.T) {
	backend := newTestBackend(t)

	weight, _ := tensor.NewRaw(tensor.Shape{4, 3}, tensor.Float32, tensor.WebGPU)
	copy(weight.AsFloat32(), []float32{
		0, 0, 0,
		1, 1, 1,
		2, 2, 2,
		3, 3, 3,
	})

	indices, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, tensor.WebGPU)
	copy(indices.AsInt32(), []int32{3, 1})

	result := backend.Embedding(weight, indices)

	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("result shape %v, expected [2 3]", result.Shape())
	}
	for i, exp := range []float32{3, 3, 3, 1, 1, 1} {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

// TestAgreesWithCPU runs the same gather on both backends and compares.
func TestAgreesWithCPU(t *testing.T) {
	gpu := newTestBackend(t)
	host := cpu.New()

	const rows, cols = 16, 64
	input, _ := tensor.NewRaw(tensor.Shape{rows, cols}, tensor.Float32, tensor.CPU)
	for i := range input.AsFloat32() {
		input.AsFloat32()[i] = float32(i) * 0.5
	}

	index, _ := tensor.NewRaw(tensor.Shape{rows, cols}, tensor.Int32, tensor.CPU)
	for i := range index.AsInt32() {
		index.AsInt32()[i] = int32((i * 7) % cols)
	}

	want := host.TakeAlongAxis(input, 1, index)
	got := gpu.TakeAlongAxis(input, 1, index)

	for i := range want.AsFloat32() {
		if got.AsFloat32()[i] != want.AsFloat32()[i] {
			t.Fatalf("backends diverge at %d: gpu %f, cpu %f",
				i, got.AsFloat32()[i], want.AsFloat32()[i])
		}
	}
}
