package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing. It implements the indexing
// kernels as naive float32-only reference loops so higher layers can be
// tested without a real backend.
type MockBackend struct {
	// FixedDevice lets tests impersonate another device's registrations.
	FixedDevice Device
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{FixedDevice: CPU}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return m.FixedDevice
}

// TakeAlongAxis is a naive reference gather (float32, int32 only).
func (m *MockBackend) TakeAlongAxis(x *RawTensor, axis int, index *RawTensor) *RawTensor {
	ax, err := CheckAlongAxisArgs(x, axis, index)
	if err != nil {
		panic(fmt.Sprintf("mock take_along_axis: %v", err))
	}

	result, err := NewRaw(index.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	_, srcAxis, inner := x.Shape().OuterAxisInner(ax)
	_, dstAxis, _ := index.Shape().OuterAxisInner(ax)

	src := x.AsFloat32()
	dst := result.AsFloat32()
	idx := index.AsInt32()
	for i := range dst {
		o := i / (inner * dstAxis)
		k := i % inner
		dst[i] = src[(o*srcAxis+int(idx[i]))*inner+k]
	}
	return result
}

// PutAlongAxis is a naive reference scatter (float32, int32 only).
func (m *MockBackend) PutAlongAxis(x *RawTensor, axis int, index, values *RawTensor) *RawTensor {
	ax, err := CheckAlongAxisArgs(x, axis, index)
	if err != nil {
		panic(fmt.Sprintf("mock put_along_axis: %v", err))
	}

	result := x.DeepClone()

	_, dstAxis, inner := x.Shape().OuterAxisInner(ax)
	_, valAxis, _ := values.Shape().OuterAxisInner(ax)

	dst := result.AsFloat32()
	vals := values.AsFloat32()
	idx := index.AsInt32()
	for i := range vals {
		o := i / (inner * valAxis)
		k := i % inner
		dst[(o*dstAxis+int(idx[i]))*inner+k] = vals[i]
	}
	return result
}

// Embedding is a naive reference row gather (float32, int32 only).
func (m *MockBackend) Embedding(weight, indices *RawTensor) *RawTensor {
	dim := weight.Shape()[1]

	outputShape := make(Shape, len(indices.Shape())+1)
	copy(outputShape, indices.Shape())
	outputShape[len(outputShape)-1] = dim

	result, err := NewRaw(outputShape, weight.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	w := weight.AsFloat32()
	dst := result.AsFloat32()
	for i, idx := range indices.AsInt32() {
		copy(dst[i*dim:(i+1)*dim], w[int(idx)*dim:(int(idx)+1)*dim])
	}
	return result
}
