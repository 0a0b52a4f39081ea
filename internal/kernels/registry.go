// Package kernels is the registration surface between the Axon indexing
// kernels and a host framework: kernels are registered per (name, device)
// with the element dtypes they support, and Execute validates an invocation
// before handing it to the backend.
package kernels

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/axon-ml/axon/internal/tensor"
)

// Kernel names.
const (
	OpTakeAlongAxis = "take_along_axis"
	OpPutAlongAxis  = "put_along_axis"
	OpEmbedding     = "embedding"
)

// Context provides the backend an invocation executes on.
type Context struct {
	Backend tensor.Backend
}

// Args carries the operands of an indexing kernel invocation.
// Input is the source tensor (destination for put_along_axis, weight for
// embedding); Values is set for put_along_axis only.
type Args struct {
	Input  *tensor.RawTensor
	Index  *tensor.RawTensor
	Values *tensor.RawTensor
	Axis   int
}

// Handler executes a kernel and returns the output tensor.
type Handler func(ctx *Context, args Args) (*tensor.RawTensor, error)

// Registration binds a kernel name on a device to a handler and the element
// dtypes the kernel is instantiated for.
type Registration struct {
	Op      string
	Device  tensor.Device
	DTypes  []tensor.DataType
	Handler Handler
}

func (r *Registration) supports(dt tensor.DataType) bool {
	for _, d := range r.DTypes {
		if d == dt {
			return true
		}
	}
	return false
}

type key struct {
	op     string
	device tensor.Device
}

// Registry maps (kernel name, device) pairs to registrations.
type Registry struct {
	entries map[key]*Registration
}

// NewRegistry creates a registry with all built-in kernels registered.
func NewRegistry() *Registry {
	r := &Registry{
		entries: make(map[key]*Registration),
	}

	r.registerTakeAlongAxis()
	r.registerPutAlongAxis()
	r.registerEmbedding()

	return r
}

// Register adds a kernel registration, replacing any previous one for the
// same (op, device) pair.
func (r *Registry) Register(reg Registration) {
	r.entries[key{reg.Op, reg.Device}] = &reg
}

// Get returns the registration for a kernel on a device.
func (r *Registry) Get(op string, device tensor.Device) (*Registration, bool) {
	reg, ok := r.entries[key{op, device}]
	return reg, ok
}

// Execute validates an invocation and runs the kernel.
//
// Element and index dtype checks happen here, before any output allocation;
// shape and bounds violations propagate from the backend as panics (fatal,
// per the backends' contract).
func (r *Registry) Execute(ctx *Context, op string, args Args) (*tensor.RawTensor, error) {
	reg, ok := r.Get(op, ctx.Backend.Device())
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKernel, "%s on %s", op, ctx.Backend.Device())
	}

	if !reg.supports(args.Input.DType()) {
		return nil, &InvalidArgumentError{
			Op:       op,
			Argument: "input",
			Observed: args.Input.DType().String(),
			err:      ErrUnsupportedDType,
		}
	}

	if args.Index != nil && !args.Index.DType().IsIndex() {
		return nil, &InvalidArgumentError{
			Op:       op,
			Argument: "index",
			Observed: args.Index.DType().String(),
			err:      ErrInvalidIndexType,
		}
	}

	out, err := reg.Handler(ctx, args)
	if err != nil {
		return nil, errors.Wrapf(err, "kernel %s on %s", op, ctx.Backend.Device())
	}
	return out, nil
}

// SupportedOps returns the sorted list of kernel names registered for a device.
func (r *Registry) SupportedOps(device tensor.Device) []string {
	var ops []string
	for k := range r.entries {
		if k.device == device {
			ops = append(ops, k.op)
		}
	}
	sort.Strings(ops)
	return ops
}
