package tensor

import (
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Arange creates a 1-D tensor with values [0, 1, ..., n-1].
// Handy for building index tensors in tests and examples.
func Arange[T DType, B Backend](n int, b B) *Tensor[T, B] {
	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()
	for i := range data {
		data[i] = fromInt[T](i)
	}
	return t
}

// fromInt converts an int to the element type T.
func fromInt[T DType](i int) T {
	var dummy T
	var v any
	switch any(dummy).(type) {
	case float32:
		v = float32(i)
	case float64:
		v = float64(i)
	case int32:
		v = int32(i)
	case int64:
		v = int64(i)
	case float16.Float16:
		v = float16.Fromfloat32(float32(i))
	case bfloat16.BFloat16:
		v = bfloat16.FromFloat32(float32(i))
	default:
		panic("unsupported type")
	}
	return v.(T)
}
