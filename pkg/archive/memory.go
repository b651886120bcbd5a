package archive

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/papercomputeco/chatmodel/pkg/llm"
)

var errNilResponse = errors.New("cannot put nil response")

type record struct {
	body      []byte
	createdAt time.Time
}

// MemoryStorer is an in-process Storer, safe for concurrent use.
type MemoryStorer struct {
	mu      sync.RWMutex
	records map[string]record
	now     func() time.Time
}

// NewMemoryStorer returns an empty MemoryStorer.
func NewMemoryStorer() *MemoryStorer {
	return &MemoryStorer{
		records: make(map[string]record),
		now:     time.Now,
	}
}

func (s *MemoryStorer) Put(_ context.Context, resp *llm.ChatResponse) (string, bool, error) {
	hash, body, err := snapshot(resp)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[hash]; ok {
		return hash, false, nil
	}
	s.records[hash] = record{body: body, createdAt: s.now().UTC()}

	return hash, true, nil
}

func (s *MemoryStorer) Get(_ context.Context, hash string) (*Entry, error) {
	s.mu.RLock()
	rec, ok := s.records[hash]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound{Hash: hash}
	}

	return decodeEntry(hash, rec.body, rec.createdAt)
}

func (s *MemoryStorer) Has(_ context.Context, hash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[hash]
	return ok, nil
}

func (s *MemoryStorer) List(_ context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*Entry, 0, len(s.records))
	for hash, rec := range s.records {
		e, err := decodeEntry(hash, rec.body, rec.createdAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b *Entry) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.Hash, b.Hash))
	})

	return entries, nil
}

func (s *MemoryStorer) Close() error {
	return nil
}

// snapshot encodes resp and computes the hash it is stored under.
func snapshot(resp *llm.ChatResponse) (string, []byte, error) {
	if resp == nil {
		return "", nil, errNilResponse
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return "", nil, fmt.Errorf("could not encode response: %w", err)
	}

	return resp.Hash(), body, nil
}

func decodeEntry(hash string, body []byte, createdAt time.Time) (*Entry, error) {
	var resp llm.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("could not decode response %s: %w", hash, err)
	}

	return &Entry{Hash: hash, CreatedAt: createdAt, Response: &resp}, nil
}
