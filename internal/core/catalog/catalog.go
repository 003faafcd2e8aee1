// Package catalog keeps the history of finalized documents.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
)

type entry struct {
	doc domain.Document
	seq uint64
}

// Catalog is an in-memory, insertion ordered set of documents keyed by id.
// It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]int
	nextSeq uint64
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Add appends doc. Adding an id twice fails with apperrors.ErrDuplicate.
func (c *Catalog) Add(doc domain.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if doc.DocumentID == "" {
		return fmt.Errorf("%w: document id is required", apperrors.ErrValidation)
	}
	if _, ok := c.index[doc.DocumentID]; ok {
		return fmt.Errorf("document %s: %w", doc.DocumentID, apperrors.ErrDuplicate)
	}
	c.index[doc.DocumentID] = len(c.entries)
	c.entries = append(c.entries, entry{doc: doc.Clone(), seq: c.nextSeq})
	c.nextSeq++
	return nil
}

// Replace swaps the stored document with the same id, keeping its position.
func (c *Catalog) Replace(doc domain.Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[doc.DocumentID]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.entries[i].doc = doc.Clone()
	return nil
}

// Remove deletes the document with id.
func (c *Catalog) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].doc.DocumentID] = j
	}
	return nil
}

// Get returns a copy of the document with id or apperrors.ErrNotFound.
func (c *Catalog) Get(id string) (domain.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return domain.Document{}, apperrors.ErrNotFound
	}
	return c.entries[i].doc.Clone(), nil
}

// Len is the number of stored documents.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// All returns every document in insertion order.
func (c *Catalog) All() []domain.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Document, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.doc.Clone()
	}
	return out
}

// Select returns the documents accepted by keep, newest date first. Documents
// sharing a date keep their insertion order.
func (c *Catalog) Select(keep func(domain.Document) bool) []domain.Document {
	c.mu.RLock()
	matched := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		if keep == nil || keep(e.doc) {
			matched = append(matched, e)
		}
	}
	c.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		di, dj := matched[i].doc.Date, matched[j].doc.Date
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return matched[i].seq < matched[j].seq
	})
	out := make([]domain.Document, len(matched))
	for i, e := range matched {
		out[i] = e.doc.Clone()
	}
	return out
}

// List returns documents passing filter ordered by date descending.
func (c *Catalog) List(filter domain.DocumentFilter) []domain.Document {
	return c.Select(func(d domain.Document) bool { return filter.Accepts(d.Kind) })
}

// Search matches query case-insensitively against number, client name, client
// company and project name. At most domain.SearchLimit results are returned and
// no match yields an empty slice.
func (c *Catalog) Search(query string) []domain.Document {
	found := c.Select(func(d domain.Document) bool { return d.MatchesQuery(query) })
	if len(found) > domain.SearchLimit {
		found = found[:domain.SearchLimit]
	}
	return found
}

// Stats groups the stored documents by status.
func (c *Catalog) Stats() domain.DocumentStats {
	return domain.SummarizeDocuments(c.All())
}

// NextNumber suggests the next human number for kind, e.g. QUO-2025-004.
// Numbers already present in the catalog are skipped.
func (c *Catalog) NextNumber(kind domain.DocumentKind, year int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var used []string
	for _, e := range c.entries {
		if e.doc.Kind == kind {
			used = append(used, e.doc.Number)
		}
	}
	return domain.NextNumber(kind, year, used)
}
