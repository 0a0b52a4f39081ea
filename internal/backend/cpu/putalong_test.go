package cpu

import (
	"testing"

	"github.com/axon-ml/axon/internal/tensor"
)

func TestPutAlongAxis1D(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, backend.Device())
	copy(input.AsFloat32(), []float32{10, 20, 30, 40})

	index, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, backend.Device())
	copy(index.AsInt32(), []int32{3, 1})

	values, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, backend.Device())
	copy(values.AsFloat32(), []float32{-1, -2})

	result := backend.PutAlongAxis(input, 0, index, values)

	expected := []float32{10, -2, 30, -1}
	for i, exp := range expected {
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

func TestPutAlongAxis2D(t *testing.T) {
	backend := New()

	// Input: [[10, 20, 30],
	//         [40, 50, 60]]
	input, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, backend.Device())
	copy(input.AsFloat32(), []float32{10, 20, 30, 40, 50, 60})

	// Scatter one value per row into column index[i,0].
	index, _ := tensor.NewRaw(tensor.Shape{2, 1}, tensor.Int32, backend.Device())
	copy(index.AsInt32(), []int32{2, 0})

	values, _ := tensor.NewRaw(tensor.Shape{2, 1}, tensor.Float32, backend.Device())
	copy(values.AsFloat32(), []float32{-1, -2})

	result := backend.PutAlongAxis(input, 1, index, values)

	expected := []float32{10, 20, -1, -2, 50, 60}
	for i, exp := range expected {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

// TestPutAlongAxisLastWriteWins documents the duplicate-index behavior:
// later positions in the index tensor overwrite earlier ones.
func TestPutAlongAxisLastWriteWins(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, backend.Device())
	copy(input.AsFloat32(), []float32{10, 20, 30})

	index, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Int32, backend.Device())
	copy(index.AsInt32(), []int32{1, 1, 1})

	values, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, backend.Device())
	copy(values.AsFloat32(), []float32{-1, -2, -3})

	result := backend.PutAlongAxis(input, 0, index, values)

	expected := []float32{10, -3, 30}
	for i, exp := range expected {
		if got := result.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

// TestPutAlongAxisRoundTrip checks that scattering values gathered from the
// same positions reproduces the source.
func TestPutAlongAxisRoundTrip(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{2, 4}, tensor.Float32, backend.Device())
	copy(input.AsFloat32(), []float32{1, 2, 3, 4, 5, 6, 7, 8})

	index, _ := tensor.NewRaw(tensor.Shape{2, 4}, tensor.Int32, backend.Device())
	copy(index.AsInt32(), []int32{3, 2, 1, 0, 0, 1, 2, 3})

	gathered := backend.TakeAlongAxis(input, 1, index)
	result := backend.PutAlongAxis(input, 1, index, gathered)

	for i := range input.AsFloat32() {
		if got, exp := result.AsFloat32()[i], input.AsFloat32()[i]; got != exp {
			t.Errorf("result[%d] = %f, expected %f", i, got, exp)
		}
	}
}

func TestPutAlongAxisPanics(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, backend.Device())
	index, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, backend.Device())
	values, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Float32, backend.Device())

	assertPanics := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	// Values shape must match index shape.
	badShape, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, backend.Device())
	assertPanics("values shape", func() { backend.PutAlongAxis(input, 0, index, badShape) })

	// Values dtype must match destination dtype.
	badDType, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32, backend.Device())
	assertPanics("values dtype", func() { backend.PutAlongAxis(input, 0, index, badDType) })

	// Out-of-bounds index value.
	copy(index.AsInt32(), []int32{0, 4})
	assertPanics("out of bounds", func() { backend.PutAlongAxis(input, 0, index, values) })
}
