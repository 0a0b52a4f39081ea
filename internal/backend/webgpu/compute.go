package webgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/axon-ml/axon/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// compileShader compiles WGSL shader code into a ShaderModule.
// Results are cached in the Backend's shaders map.
func (b *Backend) compileShader(name, code string) *wgpu.ShaderModule {
	b.mu.RLock()
	if shader, exists := b.shaders[name]; exists {
		b.mu.RUnlock()
		return shader
	}
	b.mu.RUnlock()

	shader := b.device.CreateShaderModuleWGSL(code)

	b.mu.Lock()
	b.shaders[name] = shader
	b.mu.Unlock()

	return shader
}

// getOrCreatePipeline returns a cached ComputePipeline or creates a new one.
func (b *Backend) getOrCreatePipeline(name string, shader *wgpu.ShaderModule) *wgpu.ComputePipeline {
	b.mu.RLock()
	if pipeline, exists := b.pipelines[name]; exists {
		b.mu.RUnlock()
		return pipeline
	}
	b.mu.RUnlock()

	// Auto layout (nil layout), entry point "main".
	pipeline := b.device.CreateComputePipelineSimple(nil, shader, "main")

	b.mu.Lock()
	b.pipelines[name] = pipeline
	b.mu.Unlock()

	return pipeline
}

// createBuffer creates a GPU buffer and uploads initial data.
func (b *Backend) createBuffer(data []byte, usage wgpu.BufferUsage) *wgpu.Buffer {
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            usage,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// createUniformBuffer creates a uniform buffer with proper alignment.
// Uniform buffers require 16-byte alignment for struct fields.
func (b *Backend) createUniformBuffer(data []byte) *wgpu.Buffer {
	size := uint64(len(data))
	alignedSize := (size + 15) &^ 15 // Round up to 16-byte boundary

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:             alignedSize,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, alignedSize)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), alignedSize)
	copy(mappedSlice, data)
	buffer.Unmap()

	return buffer
}

// readBuffer reads data back from a GPU buffer to CPU memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) readBuffer(srcBuffer *wgpu.Buffer, size uint64) ([]byte, error) {
	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(srcBuffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size)
	if err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	result := make([]byte, size)
	copy(result, mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}

// indexBytes returns the index tensor as little-endian i32 bytes, the format
// the shaders consume. Int64 indices are narrowed; values outside the int32
// range are rejected (WGSL has no 64-bit integers).
func indexBytes(index *tensor.RawTensor) ([]byte, error) {
	switch index.DType() {
	case tensor.Int32:
		return index.Data()[:index.ByteSize()], nil
	case tensor.Int64:
		src := index.AsInt64()
		out := make([]byte, len(src)*4)
		for i, v := range src {
			if v > math.MaxInt32 || v < math.MinInt32 {
				return nil, fmt.Errorf("index %d at position %d exceeds int32 range", v, i)
			}
			//nolint:gosec // range checked above
			binary.LittleEndian.PutUint32(out[i*4:], uint32(int32(v)))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("index tensor must be int32 or int64, got %s", index.DType())
	}
}

// dispatchKernel runs one compute pass: three storage buffers (two read-only
// inputs, one read-write result) plus a 16-byte uniform, one invocation per
// work item. All three indexing shaders share this shape.
func (b *Backend) dispatchKernel(name, code string, inputA, inputB []byte,
	resultInit []byte, resultSize int, params [4]uint32, workItems int) ([]byte, error) {
	shader := b.compileShader(name, code)
	pipeline := b.getOrCreatePipeline(name, shader)

	bufferA := b.createBuffer(inputA, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferA.Release()

	bufferB := b.createBuffer(inputB, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	defer bufferB.Release()

	//nolint:gosec // G115: sizes derive from validated shapes
	size := uint64(resultSize)
	var bufferResult *wgpu.Buffer
	if resultInit != nil {
		// Scatter kernels start from a pre-filled destination.
		bufferResult = b.createBuffer(resultInit, wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
	} else {
		bufferResult = b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
			Size:  size,
		})
	}
	defer bufferResult.Release()

	paramBytes := make([]byte, 16)
	for i, p := range params {
		binary.LittleEndian.PutUint32(paramBytes[i*4:], p)
	}
	bufferParams := b.createUniformBuffer(paramBytes)
	defer bufferParams.Release()

	bindGroupLayout := pipeline.GetBindGroupLayout(0)
	bindGroup := b.device.CreateBindGroupSimple(bindGroupLayout, []wgpu.BindGroupEntry{
		wgpu.BufferBindingEntry(0, bufferA, 0, uint64(len(inputA))),
		wgpu.BufferBindingEntry(1, bufferB, 0, uint64(len(inputB))),
		wgpu.BufferBindingEntry(2, bufferResult, 0, size),
		wgpu.BufferBindingEntry(3, bufferParams, 0, 16),
	})
	defer bindGroup.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	computePass := encoder.BeginComputePass(nil)

	computePass.SetPipeline(pipeline)
	computePass.SetBindGroup(0, bindGroup, nil)

	//nolint:gosec // G115: work item count is non-negative
	workgroups := uint32((workItems + workgroupSize - 1) / workgroupSize)
	computePass.DispatchWorkgroups(workgroups, 1, 1)
	computePass.End()

	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	return b.readBuffer(bufferResult, size)
}

// runTakeAlongAxis executes the along-axis gather on GPU.
func (b *Backend) runTakeAlongAxis(x *tensor.RawTensor, axis int, index *tensor.RawTensor) (*tensor.RawTensor, error) {
	if x.DType() != tensor.Float32 {
		return nil, fmt.Errorf("only float32 is supported, got %s", x.DType())
	}
	ax, err := tensor.CheckAlongAxisArgs(x, axis, index)
	if err != nil {
		return nil, err
	}

	idxData, err := indexBytes(index)
	if err != nil {
		return nil, err
	}

	outer, srcAxis, inner := x.Shape().OuterAxisInner(ax)
	dstAxis := index.Shape()[ax]
	total := index.NumElements()

	result, err := tensor.NewRaw(index.Shape(), x.DType(), tensor.WebGPU)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G115: dims derive from validated shapes
	params := [4]uint32{uint32(outer), uint32(srcAxis), uint32(dstAxis), uint32(inner)}
	resultData, err := b.dispatchKernel("take_along_axis", takeAlongAxisShader,
		x.Data()[:x.ByteSize()], idxData, nil, result.ByteSize(), params, total)
	if err != nil {
		return nil, err
	}

	copy(result.Data(), resultData)
	return result, nil
}

// runPutAlongAxis executes the along-axis scatter on GPU.
func (b *Backend) runPutAlongAxis(x *tensor.RawTensor, axis int, index, values *tensor.RawTensor) (*tensor.RawTensor, error) {
	if x.DType() != tensor.Float32 {
		return nil, fmt.Errorf("only float32 is supported, got %s", x.DType())
	}
	ax, err := tensor.CheckAlongAxisArgs(x, axis, index)
	if err != nil {
		return nil, err
	}
	if !index.Shape().Equal(values.Shape()) {
		return nil, fmt.Errorf("values shape %v != index shape %v", values.Shape(), index.Shape())
	}
	if values.DType() != x.DType() {
		return nil, fmt.Errorf("values dtype %s != input dtype %s", values.DType(), x.DType())
	}

	idxData, err := indexBytes(index)
	if err != nil {
		return nil, err
	}

	outer, dstAxis, inner := x.Shape().OuterAxisInner(ax)
	valAxis := values.Shape()[ax]
	total := values.NumElements()

	result, err := tensor.NewRaw(x.Shape(), x.DType(), tensor.WebGPU)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G115: dims derive from validated shapes
	params := [4]uint32{uint32(outer), uint32(dstAxis), uint32(valAxis), uint32(inner)}
	resultData, err := b.dispatchKernel("put_along_axis", putAlongAxisShader,
		values.Data()[:values.ByteSize()], idxData, x.Data()[:x.ByteSize()],
		result.ByteSize(), params, total)
	if err != nil {
		return nil, err
	}

	copy(result.Data(), resultData)
	return result, nil
}

// runEmbedding executes the row-gather embedding lookup on GPU.
func (b *Backend) runEmbedding(weight, indices *tensor.RawTensor) (*tensor.RawTensor, error) {
	if weight.DType() != tensor.Float32 {
		return nil, fmt.Errorf("only float32 is supported, got %s", weight.DType())
	}
	if len(weight.Shape()) != 2 {
		return nil, fmt.Errorf("weight must be 2D, got shape %v", weight.Shape())
	}

	idxData, err := indexBytes(indices)
	if err != nil {
		return nil, err
	}

	numEmbeddings := weight.Shape()[0]
	dim := weight.Shape()[1]
	numIndices := indices.NumElements()

	outputShape := make(tensor.Shape, len(indices.Shape())+1)
	copy(outputShape, indices.Shape())
	outputShape[len(outputShape)-1] = dim

	result, err := tensor.NewRaw(outputShape, weight.DType(), tensor.WebGPU)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G115: dims derive from validated shapes
	params := [4]uint32{uint32(numIndices), uint32(numEmbeddings), uint32(dim), 0}
	resultData, err := b.dispatchKernel("embedding", embeddingShader,
		weight.Data()[:weight.ByteSize()], idxData, nil,
		result.ByteSize(), params, numIndices*dim)
	if err != nil {
		return nil, err
	}

	copy(result.Data(), resultData)
	return result, nil
}
