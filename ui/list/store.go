package list

import (
	"io"
	"log"
)

// Store is the ordered item collection behind a list. Display order is
// insertion order and keys are unique: a duplicate key is dropped and the
// first occurrence kept.
//
// Only the Pager (Append) and the refresh path (Replace) write to a Store;
// the window renderer only reads it.
type Store struct {
	items []Item
	index map[string]int
	gen   uint64
	log   *log.Logger
}

// NewStore returns an empty store.
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{index: make(map[string]int), log: logger}
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// At returns the item at i, or false if i is out of range.
func (s *Store) At(i int) (Item, bool) {
	if i < 0 || i >= len(s.items) {
		return nil, false
	}
	return s.items[i], true
}

// IndexOf returns the index of the item with key, or -1.
func (s *Store) IndexOf(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	return -1
}

// Items returns a copy of the current items.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Generation returns the current generation. Work started under an older
// generation must not be applied.
func (s *Store) Generation() uint64 { return s.gen }

// Invalidate bumps the generation without touching the items, marking all
// in-flight work as stale.
func (s *Store) Invalidate() uint64 {
	s.gen++
	return s.gen
}

// Append adds items to the end, skipping duplicate and nil entries. It
// returns the number of items actually added.
func (s *Store) Append(items []Item) int {
	added := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		k := it.Key()
		if _, dup := s.index[k]; dup {
			s.log.Printf("list: dropping duplicate key %q", k)
			continue
		}
		s.index[k] = len(s.items)
		s.items = append(s.items, it)
		added++
	}
	return added
}

// Replace swaps the whole collection for items (deduplicated).
func (s *Store) Replace(items []Item) {
	s.items = make([]Item, 0, len(items))
	s.index = make(map[string]int, len(items))
	s.Append(items)
}

// Remove deletes the item with key and returns its former index, or -1.
func (s *Store) Remove(key string) int {
	i, ok := s.index[key]
	if !ok {
		return -1
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, key)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Key()] = j
	}
	return i
}
