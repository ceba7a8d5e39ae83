package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// EmbeddingMode distinguishes document-indexing embeddings from query-time
// embeddings. The provider optimizes the two differently; the vectors stay
// comparable for similarity search.
type EmbeddingMode string

const (
	DocumentEmbedding EmbeddingMode = "RETRIEVAL_DOCUMENT"
	QueryEmbedding    EmbeddingMode = "RETRIEVAL_QUERY"
)

// embedConcurrency bounds concurrent embedding calls per document
const embedConcurrency = 4

// Embedder maps a text to a fixed-dimensionality dense vector
type Embedder interface {
	Embed(ctx context.Context, text string, mode EmbeddingMode) ([]float32, error)
}

// ChunkEmbedding is a chunk text paired with its embedding and its
// position within the document
type ChunkEmbedding struct {
	Index   int
	Content string
	Vector  []float32
}

// EmbedChunks embeds chunk texts concurrently in DocumentEmbedding mode.
// A failed item is logged and skipped; the remaining items keep their
// original chunk order. A fully failed batch returns an empty slice, not
// an error.
func EmbedChunks(ctx context.Context, embedder Embedder, chunks []string) []ChunkEmbedding {
	if len(chunks) == 0 {
		return nil
	}

	vectors := make([][]float32, len(chunks))
	var g errgroup.Group
	g.SetLimit(embedConcurrency)

	for i, text := range chunks {
		g.Go(func() error {
			vec, err := embedder.Embed(ctx, text, DocumentEmbedding)
			if err != nil {
				log.Printf("Warning: failed to embed chunk %d, skipping: %v", i, err)
				return nil
			}
			vectors[i] = vec
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	embeddings := make([]ChunkEmbedding, 0, len(chunks))
	for i, vec := range vectors {
		if vec == nil {
			continue
		}
		embeddings = append(embeddings, ChunkEmbedding{
			Index:   i,
			Content: chunks[i],
			Vector:  vec,
		})
	}
	return embeddings
}
