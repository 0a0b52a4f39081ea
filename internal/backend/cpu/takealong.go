package cpu

import (
	"fmt"

	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// TakeAlongAxis gathers elements from x along axis using an index tensor.
// Similar to numpy.take_along_axis(x, index, axis).
//
// The index tensor must have dtype int32 or int64, the same rank as x, and
// match x on every non-axis dimension. The output always has the index
// tensor's shape and x's dtype.
//
// Example:
//
//	x:     [2, 3] with values
//	index: [2, 2] (int32 indices into axis 1)
//	axis:  1
//	output: [2, 2] where output[i,j] = x[i, index[i,j]]
//
// Out-of-range index values panic with the offending value; indices are
// validated up front so the parallel copy pass is panic-free.
func (cpu *CPUBackend) TakeAlongAxis(x *tensor.RawTensor, axis int, index *tensor.RawTensor) *tensor.RawTensor {
	ax := validateAlongAxisArgs("take_along_axis", x, axis, index)

	// Output shape is the index shape, always.
	result, err := tensor.NewRaw(index.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("take_along_axis: failed to create result tensor: %v", err))
	}

	// Dispatch on index width, then element dtype.
	switch index.DType() {
	case tensor.Int32:
		takeDispatch(cpu, result, x, index.AsInt32(), ax)
	case tensor.Int64:
		takeDispatch(cpu, result, x, index.AsInt64(), ax)
	default:
		panic(fmt.Sprintf("take_along_axis: index tensor must be int32 or int64, got %s", index.DType()))
	}

	return result
}

// validateAlongAxisArgs normalizes the axis and checks the index tensor's
// dtype and shape against x. Shared by the take and put kernels.
func validateAlongAxisArgs(op string, x *tensor.RawTensor, axis int, index *tensor.RawTensor) int {
	ax, err := tensor.CheckAlongAxisArgs(x, axis, index)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return ax
}

// takeDispatch instantiates the gather kernel for the element dtype of x.
func takeDispatch[I tensor.IndexType](cpu *CPUBackend, dst, src *tensor.RawTensor, indices []I, axis int) {
	switch src.DType() {
	case tensor.Float32:
		takeAlongAxis(dst.AsFloat32(), src.AsFloat32(), indices, src.Shape(), dst.Shape(), axis, cpu.parallel)
	case tensor.Float64:
		takeAlongAxis(dst.AsFloat64(), src.AsFloat64(), indices, src.Shape(), dst.Shape(), axis, cpu.parallel)
	case tensor.Int32:
		takeAlongAxis(dst.AsInt32(), src.AsInt32(), indices, src.Shape(), dst.Shape(), axis, cpu.parallel)
	case tensor.Int64:
		takeAlongAxis(dst.AsInt64(), src.AsInt64(), indices, src.Shape(), dst.Shape(), axis, cpu.parallel)
	case tensor.Float16:
		takeAlongAxis(dst.AsFloat16(), src.AsFloat16(), indices, src.Shape(), dst.Shape(), axis, cpu.parallel)
	case tensor.BFloat16:
		takeAlongAxis(dst.AsBFloat16(), src.AsBFloat16(), indices, src.Shape(), dst.Shape(), axis, cpu.parallel)
	default:
		panic(fmt.Sprintf("take_along_axis: unsupported dtype %s", src.DType()))
	}
}

// takeAlongAxis is the gather kernel, generic over element type and index
// width. The gather is a pure copy: no arithmetic touches the element values,
// so float16/bfloat16 lanes move bit-exact.
func takeAlongAxis[T any, I tensor.IndexType](dst, src []T, indices []I,
	srcShape, dstShape tensor.Shape, axis int, cfg parallel.Config) {
	_, srcAxis, inner := srcShape.OuterAxisInner(axis)
	_, dstAxis, _ := dstShape.OuterAxisInner(axis)

	checkIndexBounds("take_along_axis", indices, srcAxis)

	// One unit of work per output element.
	parallel.For(len(dst), func(i int) {
		o := i / (inner * dstAxis)
		k := i % inner
		dst[i] = src[(o*srcAxis+int(indices[i]))*inner+k]
	}, cfg)
}

// checkIndexBounds rejects index values outside [0, limit).
func checkIndexBounds[I tensor.IndexType](op string, indices []I, limit int) {
	for i, v := range indices {
		if int(v) < 0 || int(v) >= limit {
			panic(fmt.Sprintf("%s: index %d out of bounds [0, %d) at position %d", op, int(v), limit, i))
		}
	}
}
