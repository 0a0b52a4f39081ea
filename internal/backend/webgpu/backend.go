package webgpu

import (
	"fmt"
	"sync"

	"github.com/axon-ml/axon/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
)

// Backend implements the indexing kernels on GPU using WebGPU.
//
// The backend supports float32 element tensors; index tensors may be int32
// or int64 (int64 values are narrowed to int32 host-side, since WGSL has no
// 64-bit integers). Out-of-range index values zero-fill on the gather side;
// the CPU backend is the reference for strict bounds checking.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	// Device info
	adapterInfo *wgpu.AdapterInfoGo
}

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (backend *Backend, err error) {
	// Recover from panic if the wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, fmt.Errorf("webgpu: failed to create instance: %w", instanceErr)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	// Adapter info is optional; may be nil if GetInfo fails.
	adapterInfo, _ := adapter.GetInfo()

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:    instance,
		adapter:     adapter,
		device:      device,
		queue:       queue,
		shaders:     make(map[string]*wgpu.ShaderModule),
		pipelines:   make(map[string]*wgpu.ComputePipeline),
		adapterInfo: adapterInfo,
	}, nil
}

// Release frees the GPU resources held by the backend.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = make(map[string]*wgpu.ComputePipeline)
	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = make(map[string]*wgpu.ShaderModule)

	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// AdapterInfo returns the adapter description, or nil if unavailable.
func (b *Backend) AdapterInfo() *wgpu.AdapterInfoGo {
	return b.adapterInfo
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// TakeAlongAxis gathers elements from x along axis on GPU.
func (b *Backend) TakeAlongAxis(x *tensor.RawTensor, axis int, index *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runTakeAlongAxis(x, axis, index)
	if err != nil {
		panic("webgpu: TakeAlongAxis: " + err.Error())
	}
	return result
}

// PutAlongAxis scatters values into a copy of x along axis on GPU.
func (b *Backend) PutAlongAxis(x *tensor.RawTensor, axis int, index, values *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runPutAlongAxis(x, axis, index, values)
	if err != nil {
		panic("webgpu: PutAlongAxis: " + err.Error())
	}
	return result
}

// Embedding performs a row-gather embedding lookup on GPU.
func (b *Backend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runEmbedding(weight, indices)
	if err != nil {
		panic("webgpu: Embedding: " + err.Error())
	}
	return result
}
