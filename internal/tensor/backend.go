package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for the indexing kernels; they are
// the injected gather/scatter capability the kernel registry dispatches to.
//
// Implementations:
//   - CPU: pure Go, parallelized across output elements
//   - WebGPU: WGSL compute shaders, one invocation per output element
type Backend interface {
	// TakeAlongAxis gathers elements from x along axis, selected per output
	// position by the index tensor. The output has the index tensor's shape
	// and x's dtype. The index tensor must be Int32 or Int64 and match x on
	// every non-axis dimension.
	TakeAlongAxis(x *RawTensor, axis int, index *RawTensor) *RawTensor

	// PutAlongAxis returns a copy of x with values scattered along axis:
	// out[coord | axis→index[coord]] = values[coord]. The index and values
	// tensors share a shape and match x on every non-axis dimension.
	PutAlongAxis(x *RawTensor, axis int, index, values *RawTensor) *RawTensor

	// Embedding performs a row gather: weight is [N, D], indices any shape
	// of int32/int64, output [...indices.shape, D].
	Embedding(weight, indices *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
