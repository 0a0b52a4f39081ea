package tensor

import "fmt"

// CheckAlongAxisArgs validates the arguments shared by the along-axis
// kernels (take_along_axis, put_along_axis) and normalizes the axis.
//
// The index tensor must be Int32 or Int64, have the same rank as x, and
// match x on every non-axis dimension. Both backends call this before
// touching any memory.
func CheckAlongAxisArgs(x *RawTensor, axis int, index *RawTensor) (int, error) {
	if !index.DType().IsIndex() {
		return 0, fmt.Errorf("index tensor must be int32 or int64, got %s", index.DType())
	}

	ax, err := x.Shape().NormalizeAxis(axis)
	if err != nil {
		return 0, err
	}

	xShape := x.Shape()
	indexShape := index.Shape()
	if len(indexShape) != len(xShape) {
		return 0, fmt.Errorf("index rank %d != input rank %d", len(indexShape), len(xShape))
	}
	for i := range xShape {
		if i != ax && indexShape[i] != xShape[i] {
			return 0, fmt.Errorf("index shape mismatch at dim %d: %d != %d", i, indexShape[i], xShape[i])
		}
	}

	return ax, nil
}
