// Package webgpu implements the WebGPU backend for the Axon indexing kernels.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

// WGSL compute shaders for the indexing kernels.
// Using string constants instead of embed for simplicity.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// takeAlongAxisShader gathers elements along an arbitrary axis.
// The host decomposes both tensors around the axis into [outer, axis, inner];
// each invocation produces one output element. Out-of-range indices zero-fill
// (a device kernel cannot fail per-element).
const takeAlongAxisShader = `
@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read> index: array<i32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    outer: u32,
    src_axis: u32,
    dst_axis: u32,
    inner: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    let total = params.outer * params.dst_axis * params.inner;
    if (i >= total) {
        return;
    }

    let o = i / (params.dst_axis * params.inner);
    let k = i % params.inner;
    let idx = u32(index[i]);

    if (idx < params.src_axis) {
        result[i] = src[(o * params.src_axis + idx) * params.inner + k];
    } else {
        result[i] = 0.0;
    }
}
`

// putAlongAxisShader scatters values along an arbitrary axis into a result
// buffer pre-filled with the destination tensor. One invocation per values
// element; duplicate indices resolve to an unspecified writer.
const putAlongAxisShader = `
@group(0) @binding(0) var<storage, read> values: array<f32>;
@group(0) @binding(1) var<storage, read> index: array<i32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    outer: u32,
    dst_axis: u32,
    val_axis: u32,
    inner: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    let total = params.outer * params.val_axis * params.inner;
    if (i >= total) {
        return;
    }

    let o = i / (params.val_axis * params.inner);
    let k = i % params.inner;
    let idx = u32(index[i]);

    if (idx < params.dst_axis) {
        result[(o * params.dst_axis + idx) * params.inner + k] = values[i];
    }
}
`

// embeddingShader performs a row gather: one invocation per output element.
// weight is [num_embeddings, dim]; out-of-range rows zero-fill.
const embeddingShader = `
@group(0) @binding(0) var<storage, read> weight: array<f32>;
@group(0) @binding(1) var<storage, read> index: array<i32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    num_indices: u32,
    num_embeddings: u32,
    dim: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    let total = params.num_indices * params.dim;
    if (i >= total) {
        return;
    }

    let row = i / params.dim;
    let d = i % params.dim;
    let idx = u32(index[row]);

    if (idx < params.num_embeddings) {
        result[i] = weight[idx * params.dim + d];
    } else {
        result[i] = 0.0;
    }
}
`
