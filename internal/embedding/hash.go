package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

const defaultHashDims = 128

// HashEmbedder produces deterministic embeddings without a model or network.
// Each term in the text is hashed into a bucket, so texts sharing terms get
// correlated vectors. Useful for tests and offline setups; not semantic.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates a hash embedder. dims <= 0 uses the default size.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = defaultHashDims
	}
	return &HashEmbedder{dims: dims}
}

func (e *HashEmbedder) Embed(ctx context.Context, text string) (Vector, error) {
	vec := make(Vector, e.dims)
	for _, term := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New64a()
		h.Write([]byte(term))
		sum := h.Sum64()
		// Sign bit from the hash spreads terms across both directions,
		// keeping unrelated texts near-orthogonal.
		idx := int(sum % uint64(e.dims))
		if sum&(1<<63) != 0 {
			vec[idx] -= 1
		} else {
			vec[idx] += 1
		}
	}
	return normalize(vec), nil
}

func (e *HashEmbedder) Dims() int { return e.dims }

func normalize(vec Vector) Vector {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	n := float32(math.Sqrt(norm))
	for i, v := range vec {
		vec[i] = v / n
	}
	return vec
}
