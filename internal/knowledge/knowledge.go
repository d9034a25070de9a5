// Package knowledge implements the embedded vector-search collaborator
// backing search_knowledge/index_document, gated by the vector_db
// capability. It wraps github.com/philippgille/chromem-go, an in-process,
// pure-Go vector collection store — chosen per the design's open question
// on the embedding backend, since it needs no subprocess or network
// service and keeps the server loopback-only.
//
// The actual embedding model is an external collaborator per spec.md §1
// ("the vector-store embedding model" is explicitly out of scope); Embed
// below is a deterministic, local feature-hashing stand-in good enough to
// exercise chromem-go's storage and nearest-neighbor query path without
// depending on a real model or network call.
package knowledge

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
)

const embeddingDims = 256

// Store wraps one project's persistent vector collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	name       string
}

// Open creates (or reuses) the persistent vector database at dbPath and
// the named collection within it ("knowledge" by default).
func Open(dbPath, collectionName string) (*Store, error) {
	db, err := chromem.NewPersistentDB(dbPath, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	if collectionName == "" {
		collectionName = "knowledge"
	}
	col, err := db.GetOrCreateCollection(collectionName, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("creating collection %q: %w", collectionName, err)
	}
	return &Store{db: db, collection: col, name: collectionName}, nil
}

// CollectionName reports the collection this Store indexes into.
func (s *Store) CollectionName() string { return s.name }

// Index adds or replaces one document's content under id.
func (s *Store) Index(ctx context.Context, id, title, content string, metadata map[string]string) error {
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadata["title"] = title
	return s.collection.AddDocument(ctx, chromem.Document{
		ID:       id,
		Content:  content,
		Metadata: metadata,
	})
}

// Match is one nearest-neighbor query result.
type Match struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// Search returns up to n nearest documents to query.
func (s *Store) Search(ctx context.Context, query string, n int) ([]Match, error) {
	if n <= 0 {
		n = 5
	}
	if count := s.collection.Count(); count < n {
		n = count
	}
	if n == 0 {
		return nil, nil
	}

	results, err := s.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, r := range results {
		matches = append(matches, Match{
			ID:         r.ID,
			Title:      r.Metadata["title"],
			Content:    r.Content,
			Similarity: r.Similarity,
		})
	}
	return matches, nil
}

// Manager hands out at most one vector Store per project, mirroring
// store.Manager's one-connection-per-project ownership rule.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{stores: make(map[string]*Store)}
}

// Get opens (or reuses) the vector Store for the project rooted at
// projectRoot, using dbPath as the knowledge.db location.
func (m *Manager) Get(projectRoot, dbPath string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[projectRoot]; ok {
		return s, nil
	}
	s, err := Open(dbPath, "knowledge")
	if err != nil {
		return nil, err
	}
	m.stores[projectRoot] = s
	return s, nil
}

// embeddingFunc is a deterministic feature-hashing embedder: each lowercased
// word is hashed into one of embeddingDims buckets and accumulated, then
// the vector is L2-normalized. It has none of the semantic properties of a
// trained embedding model — it exists so chromem-go's storage/query path
// is exercised without pulling in a real model as a build dependency.
func embeddingFunc(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[int(h.Sum32())%embeddingDims]++
	}

	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return vec, nil
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}
