package repository

import (
	"strconv"
	"sync"
	"time"

	"github.com/gogotex/docsign/internal/document"
	"go.uber.org/atomic"
)

const idPrefix = "doc-"

// SampleContents are the documents stored by Seed.
var SampleContents = []string{
	"<document><title>Sample Document 1</title><content>This is the first sample document for signing.</content></document>",
	"<document><title>Sample Document 2</title><content>This is the second sample document for signing.</content></document>",
	"<document><title>Sample Document 3</title><content>This is the third sample document for signing.</content></document>",
}

// MemoryRepo is the in-memory document registry. It assigns "doc-N" ids from
// a shared counter and lets each document be signed at most once.
// Callers only ever receive copies of the stored documents.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Document
	order []string
	seq   *atomic.Int64
	now   func() time.Time
	seed  bool
}

type Option func(*MemoryRepo)

// WithSeed stores the sample documents on construction.
func WithSeed() Option {
	return func(m *MemoryRepo) { m.seed = true }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *MemoryRepo) { m.now = now }
}

func NewMemoryRepo(opts ...Option) *MemoryRepo {
	m := &MemoryRepo{
		store: make(map[string]*document.Document),
		seq:   atomic.NewInt64(0),
		now:   time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	if m.seed {
		m.Seed()
	}
	return m
}

// Seed stores the three sample documents, each taking the next id.
func (m *MemoryRepo) Seed() {
	for _, c := range SampleContents {
		m.Create(c)
	}
}

func (m *MemoryRepo) nextID() string {
	return idPrefix + strconv.FormatInt(m.seq.Inc(), 10)
}

// Create stores an unsigned document. Content is not validated here.
func (m *MemoryRepo) Create(content string) document.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &document.Document{ID: m.nextID(), Content: content, CreatedAt: m.now()}
	m.store[d.ID] = d
	m.order = append(m.order, d.ID)
	return *d
}

func (m *MemoryRepo) Get(id string) (document.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[id]
	if !ok {
		return document.Document{}, false
	}
	return *d, true
}

// List returns all documents in insertion order.
func (m *MemoryRepo) List() []document.Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]document.Document, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.store[id])
	}
	return out
}

// Sign attaches signature when the document exists and is unsigned.
// Missing and already-signed documents both return false.
func (m *MemoryRepo) Sign(id, signature string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok || d.IsSigned() {
		return false
	}
	at := m.now()
	// the pointers are never written again, so copies may share them
	d.Signature = &signature
	d.SignedAt = &at
	return true
}

func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}
