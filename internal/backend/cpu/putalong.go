package cpu

import (
	"fmt"

	"github.com/axon-ml/axon/internal/tensor"
)

// PutAlongAxis returns a copy of x with values scattered along axis:
// out[coord | axis→index[coord]] = values[coord]. The scatter dual of
// TakeAlongAxis; similar to numpy.put_along_axis, but value-semantic.
//
// The index and values tensors must share a shape, have the same rank as x,
// and match x on every non-axis dimension. When several index positions name
// the same destination coordinate the last write wins, so the scatter pass
// runs sequentially.
func (cpu *CPUBackend) PutAlongAxis(x *tensor.RawTensor, axis int, index, values *tensor.RawTensor) *tensor.RawTensor {
	ax := validateAlongAxisArgs("put_along_axis", x, axis, index)

	if !index.Shape().Equal(values.Shape()) {
		panic(fmt.Sprintf("put_along_axis: values shape %v != index shape %v", values.Shape(), index.Shape()))
	}
	if values.DType() != x.DType() {
		panic(fmt.Sprintf("put_along_axis: values dtype %s != input dtype %s", values.DType(), x.DType()))
	}

	result := x.DeepClone()

	switch index.DType() {
	case tensor.Int32:
		putDispatch(result, values, index.AsInt32(), ax)
	case tensor.Int64:
		putDispatch(result, values, index.AsInt64(), ax)
	default:
		panic(fmt.Sprintf("put_along_axis: index tensor must be int32 or int64, got %s", index.DType()))
	}

	return result
}

// putDispatch instantiates the scatter kernel for the element dtype of dst.
func putDispatch[I tensor.IndexType](dst, values *tensor.RawTensor, indices []I, axis int) {
	switch dst.DType() {
	case tensor.Float32:
		putAlongAxis(dst.AsFloat32(), values.AsFloat32(), indices, dst.Shape(), values.Shape(), axis)
	case tensor.Float64:
		putAlongAxis(dst.AsFloat64(), values.AsFloat64(), indices, dst.Shape(), values.Shape(), axis)
	case tensor.Int32:
		putAlongAxis(dst.AsInt32(), values.AsInt32(), indices, dst.Shape(), values.Shape(), axis)
	case tensor.Int64:
		putAlongAxis(dst.AsInt64(), values.AsInt64(), indices, dst.Shape(), values.Shape(), axis)
	case tensor.Float16:
		putAlongAxis(dst.AsFloat16(), values.AsFloat16(), indices, dst.Shape(), values.Shape(), axis)
	case tensor.BFloat16:
		putAlongAxis(dst.AsBFloat16(), values.AsBFloat16(), indices, dst.Shape(), values.Shape(), axis)
	default:
		panic(fmt.Sprintf("put_along_axis: unsupported dtype %s", dst.DType()))
	}
}

// putAlongAxis is the scatter kernel, generic over element type and index width.
func putAlongAxis[T any, I tensor.IndexType](dst, values []T, indices []I,
	dstShape, valShape tensor.Shape, axis int) {
	_, dstAxis, inner := dstShape.OuterAxisInner(axis)
	_, valAxis, _ := valShape.OuterAxisInner(axis)

	checkIndexBounds("put_along_axis", indices, dstAxis)

	for i := range values {
		o := i / (inner * valAxis)
		k := i % inner
		dst[(o*dstAxis+int(indices[i]))*inner+k] = values[i]
	}
}
