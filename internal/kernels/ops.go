package kernels

import (
	"github.com/axon-ml/axon/internal/tensor"
)

// cpuDTypes is the element dtype set the CPU kernels are instantiated for.
var cpuDTypes = []tensor.DataType{
	tensor.Float32,
	tensor.Float64,
	tensor.Int32,
	tensor.Int64,
	tensor.Float16,
	tensor.BFloat16,
}

// gpuDTypes is the element dtype set the WGSL shaders are written for.
var gpuDTypes = []tensor.DataType{
	tensor.Float32,
}

func (r *Registry) registerTakeAlongAxis() {
	handler := func(ctx *Context, args Args) (*tensor.RawTensor, error) {
		return ctx.Backend.TakeAlongAxis(args.Input, args.Axis, args.Index), nil
	}

	r.Register(Registration{
		Op:      OpTakeAlongAxis,
		Device:  tensor.CPU,
		DTypes:  cpuDTypes,
		Handler: handler,
	})
	r.Register(Registration{
		Op:      OpTakeAlongAxis,
		Device:  tensor.WebGPU,
		DTypes:  gpuDTypes,
		Handler: handler,
	})
}

func (r *Registry) registerPutAlongAxis() {
	handler := func(ctx *Context, args Args) (*tensor.RawTensor, error) {
		return ctx.Backend.PutAlongAxis(args.Input, args.Axis, args.Index, args.Values), nil
	}

	r.Register(Registration{
		Op:      OpPutAlongAxis,
		Device:  tensor.CPU,
		DTypes:  cpuDTypes,
		Handler: handler,
	})
	r.Register(Registration{
		Op:      OpPutAlongAxis,
		Device:  tensor.WebGPU,
		DTypes:  gpuDTypes,
		Handler: handler,
	})
}

func (r *Registry) registerEmbedding() {
	handler := func(ctx *Context, args Args) (*tensor.RawTensor, error) {
		return ctx.Backend.Embedding(args.Input, args.Index), nil
	}

	r.Register(Registration{
		Op:      OpEmbedding,
		Device:  tensor.CPU,
		DTypes:  cpuDTypes,
		Handler: handler,
	})
	r.Register(Registration{
		Op:      OpEmbedding,
		Device:  tensor.WebGPU,
		DTypes:  gpuDTypes,
		Handler: handler,
	})
}
