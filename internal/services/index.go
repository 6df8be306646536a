package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// DocumentIndex is the vector index over uploaded document text. Analysis
// writes chunks in; comparison reads similar excerpts back out.
type DocumentIndex interface {
	InitCollection() error
	IndexChunks(ctx context.Context, docID, candidateID, kind string, chunks []string, embeddings [][]float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type SearchResult struct {
	DocID       string
	CandidateID string
	Kind        string
	Score       float32
	Text        string
}

type documentIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewDocumentIndex(urlStr, apiKey, collectionName string, logger *zap.Logger) (DocumentIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &documentIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
		logger:         logger,
	}, nil
}

// InitCollection implements DocumentIndex.
func (d *documentIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := d.client.CollectionExists(ctx, d.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = d.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: d.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     d.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	d.logger.Info("qdrant collection created", zap.String("collection", d.collectionName))
	return nil
}

// IndexChunks implements DocumentIndex. chunks and embeddings are parallel
// slices; older points for the same document are replaced.
func (d *documentIndex) IndexChunks(ctx context.Context, docID, candidateID, kind string, chunks []string, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	// Re-analysis replaces the document's points.
	if err := d.DeleteDocument(ctx, docID); err != nil {
		d.logger.Warn("failed to clear existing points", zap.String("doc_id", docID), zap.Error(err))
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(i) + pointIDBase(docID)),
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"doc_id":       docID,
				"candidate_id": candidateID,
				"kind":         kind,
				"chunk":        i,
				"text":         chunk,
			}),
		})
	}

	_, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// SearchSimilar implements DocumentIndex.
func (d *documentIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	searchResult, err := d.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: d.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []SearchResult
	for _, point := range searchResult {
		result := SearchResult{Score: point.Score}
		payload := point.Payload

		result.DocID = payloadString(payload, "doc_id")
		result.CandidateID = payloadString(payload, "candidate_id")
		result.Kind = payloadString(payload, "kind")
		result.Text = payloadString(payload, "text")

		results = append(results, result)
	}
	return results, nil
}

// DeleteDocument implements DocumentIndex.
func (d *documentIndex) DeleteDocument(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := d.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: d.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete document points: %w", err)
	}
	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if value, ok := payload[key]; ok {
		if v, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
			return v.StringValue
		}
	}
	return ""
}

// pointIDBase derives a stable numeric namespace per document so chunk IDs
// don't collide across documents.
func pointIDBase(docID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(docID))
	// Leave room for chunk offsets.
	return h.Sum64() &^ 0xFFFF
}
