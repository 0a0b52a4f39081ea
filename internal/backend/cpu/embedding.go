package cpu

import (
	"fmt"

	"github.com/axon-ml/axon/internal/tensor"
)

// Embedding performs an embedding lookup, a row-wise gather.
// weight: [numEmbeddings, embeddingDim]
// indices: any shape of int32/int64 indices
// output: [...indices.shape, embeddingDim]
//
// Similar to PyTorch's F.embedding or nn.Embedding.
func (cpu *CPUBackend) Embedding(weight, indices *tensor.RawTensor) *tensor.RawTensor {
	if !indices.DType().IsIndex() {
		panic(fmt.Sprintf("embedding: indices must be int32 or int64, got %s", indices.DType()))
	}

	weightShape := weight.Shape()
	if len(weightShape) != 2 {
		panic(fmt.Sprintf("embedding: weight must be 2D, got shape %v", weightShape))
	}

	numEmbeddings := weightShape[0]
	embeddingDim := weightShape[1]

	// Output shape: [...indices.shape, embeddingDim]
	indicesShape := indices.Shape()
	outputShape := make(tensor.Shape, len(indicesShape)+1)
	copy(outputShape, indicesShape)
	outputShape[len(outputShape)-1] = embeddingDim

	result, err := tensor.NewRaw(outputShape, weight.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("embedding: failed to create result tensor: %v", err))
	}

	// Row lookup is dtype-agnostic: copy rows at byte granularity.
	rowBytes := embeddingDim * weight.DType().Size()
	dst := result.Data()
	src := weight.Data()

	lookup := func(i, idx int) {
		if idx < 0 || idx >= numEmbeddings {
			panic(fmt.Sprintf("embedding: index %d out of bounds [0, %d)", idx, numEmbeddings))
		}
		copy(dst[i*rowBytes:(i+1)*rowBytes], src[idx*rowBytes:(idx+1)*rowBytes])
	}

	switch indices.DType() {
	case tensor.Int32:
		for i, idx := range indices.AsInt32() {
			lookup(i, int(idx))
		}
	case tensor.Int64:
		for i, idx := range indices.AsInt64() {
			lookup(i, int(idx))
		}
	}

	return result
}
