package store

import (
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/image"
	"github.com/google/uuid"
)

// MemoryStore keeps every record for the lifetime of the process. Callers
// always receive copies; nothing handed out aliases store-owned state.
type MemoryStore struct {
	mu       sync.RWMutex
	records  map[string]Record
	children map[string][]string
	order    []string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		records:  make(map[string]Record),
		children: make(map[string][]string),
	}
}

// mintID must run under the write lock so existence check and insert stay
// atomic per identifier.
func (s *MemoryStore) mintID() string {
	for {
		u := uuid.New()
		id := "gen_" + hex.EncodeToString(u[:])[:12]
		if _, exists := s.records[id]; !exists {
			return id
		}
	}
}

func (s *MemoryStore) insert(rec Record) {
	s.records[rec.ID] = cloneRecord(rec)
	s.order = append(s.order, rec.ID)
	if rec.ParentID != "" {
		s.children[rec.ParentID] = append(s.children[rec.ParentID], rec.ID)
	}
}

func (s *MemoryStore) CreateGeneration(req Request, res image.Result, optimizedPrompt string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Record{
		ID:              s.mintID(),
		ImageURL:        res.URL,
		OptimizedPrompt: optimizedPrompt,
		OriginalRequest: cloneRequest(req),
		Seed:            cloneSeed(res.Seed),
		Model:           res.Model,
		CreatedAt:       time.Now().UTC(),
	}
	s.insert(rec)
	return rec
}

func (s *MemoryStore) CreateRefinement(parentID, instruction string, res image.Result, refinedPrompt string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.records[parentID]
	if !ok {
		return Record{}, ErrNotFound
	}

	rec := Record{
		ID:                s.mintID(),
		ImageURL:          res.URL,
		OptimizedPrompt:   refinedPrompt,
		OriginalRequest:   cloneRequest(parent.OriginalRequest),
		RefineInstruction: instruction,
		Seed:              cloneSeed(res.Seed),
		Model:             res.Model,
		CreatedAt:         time.Now().UTC(),
		ParentID:          parentID,
	}
	s.insert(rec)
	return rec, nil
}

func (s *MemoryStore) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	return cloneRecord(rec), true
}

func (s *MemoryStore) Lineage(id string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.records[id]; !ok {
		return nil
	}

	var chain []Record
	for cur := id; cur != ""; {
		rec, ok := s.records[cur]
		if !ok {
			break
		}
		chain = append(chain, cloneRecord(rec))
		cur = rec.ParentID
	}
	slices.Reverse(chain)

	for _, childID := range s.children[id] {
		chain = append(chain, cloneRecord(s.records[childID]))
	}
	return chain
}

func (s *MemoryStore) Recent(limit int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := make([]Record, 0, min(limit, len(s.order)))
	for i := len(s.order) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, cloneRecord(s.records[s.order[i]]))
	}
	return recent
}

func cloneRecord(rec Record) Record {
	rec.OriginalRequest = cloneRequest(rec.OriginalRequest)
	rec.Seed = cloneSeed(rec.Seed)
	return rec
}

func cloneRequest(req Request) Request {
	req.Styles = slices.Clone(req.Styles)
	return req
}

func cloneSeed(seed *int64) *int64 {
	if seed == nil {
		return nil
	}
	v := *seed
	return &v
}
