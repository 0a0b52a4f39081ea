package kernels

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-ml/axon/internal/tensor"
)

func newFloat32(t *testing.T, shape tensor.Shape, data []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func newInt32(t *testing.T, shape tensor.Shape, data []int32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Int32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsInt32(), data)
	return raw
}

func TestExecuteTakeAlongAxis(t *testing.T) {
	reg := NewRegistry()
	ctx := &Context{Backend: tensor.NewMockBackend()}

	input := newFloat32(t, tensor.Shape{4}, []float32{10, 20, 30, 40})
	index := newInt32(t, tensor.Shape{3}, []int32{3, 0, 1})

	out, err := reg.Execute(ctx, OpTakeAlongAxis, Args{Input: input, Index: index, Axis: 0})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, out.Shape())
	assert.Equal(t, []float32{40, 10, 20}, out.AsFloat32())
}

func TestExecutePutAlongAxis(t *testing.T) {
	reg := NewRegistry()
	ctx := &Context{Backend: tensor.NewMockBackend()}

	input := newFloat32(t, tensor.Shape{4}, []float32{10, 20, 30, 40})
	index := newInt32(t, tensor.Shape{2}, []int32{3, 1})
	values := newFloat32(t, tensor.Shape{2}, []float32{-1, -2})

	out, err := reg.Execute(ctx, OpPutAlongAxis,
		Args{Input: input, Index: index, Values: values, Axis: 0})
	require.NoError(t, err)
	assert.Equal(t, []float32{10, -2, 30, -1}, out.AsFloat32())
	assert.Equal(t, []float32{10, 20, 30, 40}, input.AsFloat32(), "input must not be mutated")
}

func TestExecuteEmbedding(t *testing.T) {
	reg := NewRegistry()
	ctx := &Context{Backend: tensor.NewMockBackend()}

	weight := newFloat32(t, tensor.Shape{3, 2}, []float32{0, 0, 1, 1, 2, 2})
	indices := newInt32(t, tensor.Shape{2}, []int32{2, 0})

	out, err := reg.Execute(ctx, OpEmbedding, Args{Input: weight, Index: indices})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{2, 2, 0, 0}, out.AsFloat32())
}

func TestExecuteUnknownKernel(t *testing.T) {
	reg := NewRegistry()
	ctx := &Context{Backend: tensor.NewMockBackend()}

	input := newFloat32(t, tensor.Shape{1}, []float32{0})

	_, err := reg.Execute(ctx, "top_k", Args{Input: input})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKernel))
}

func TestExecuteInvalidIndexType(t *testing.T) {
	reg := NewRegistry()
	ctx := &Context{Backend: tensor.NewMockBackend()}

	input := newFloat32(t, tensor.Shape{3}, []float32{1, 2, 3})
	badIndex := newFloat32(t, tensor.Shape{3}, []float32{0, 1, 2})

	_, err := reg.Execute(ctx, OpTakeAlongAxis, Args{Input: input, Index: badIndex, Axis: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidIndexType))

	var invalid *InvalidArgumentError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "index", invalid.Argument)
	assert.Equal(t, "float32", invalid.Observed)
}

func TestExecuteUnsupportedDType(t *testing.T) {
	reg := NewRegistry()

	// The WebGPU registrations only cover float32; impersonate the device so
	// the dtype gate is exercised without a GPU.
	ctx := &Context{Backend: &tensor.MockBackend{FixedDevice: tensor.WebGPU}}

	input, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)
	index := newInt32(t, tensor.Shape{2}, []int32{0, 1})

	_, err = reg.Execute(ctx, OpTakeAlongAxis, Args{Input: input, Index: index, Axis: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedDType))
}

func TestSupportedOps(t *testing.T) {
	reg := NewRegistry()

	want := []string{OpEmbedding, OpPutAlongAxis, OpTakeAlongAxis}
	assert.Equal(t, want, reg.SupportedOps(tensor.CPU))
	assert.Equal(t, want, reg.SupportedOps(tensor.WebGPU))
	assert.Empty(t, reg.SupportedOps(tensor.CUDA))
}

func TestRegisterOverride(t *testing.T) {
	reg := NewRegistry()

	called := false
	reg.Register(Registration{
		Op:     OpTakeAlongAxis,
		Device: tensor.CPU,
		DTypes: []tensor.DataType{tensor.Float32},
		Handler: func(ctx *Context, args Args) (*tensor.RawTensor, error) {
			called = true
			return args.Input, nil
		},
	})

	ctx := &Context{Backend: tensor.NewMockBackend()}
	input := newFloat32(t, tensor.Shape{2}, []float32{1, 2})
	index := newInt32(t, tensor.Shape{2}, []int32{0, 1})

	out, err := reg.Execute(ctx, OpTakeAlongAxis, Args{Input: input, Index: index, Axis: 0})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Same(t, input, out)
}
