package ledger

import (
	"bytes"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// accountLocks hands out one mutex per account ID. Entries are dropped once
// no goroutine holds or waits on them.
type accountLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[uuid.UUID]*lockEntry)}
}

// lock acquires the locks for ids in a fixed order and returns the matching
// unlock func. uuid.Nil and duplicates are ignored.
func (l *accountLocks) lock(ids ...uuid.UUID) func() {
	keys := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != uuid.Nil && !slices.Contains(keys, id) {
			keys = append(keys, id)
		}
	}
	slices.SortFunc(keys, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	entries := make([]*lockEntry, len(keys))
	l.mu.Lock()
	for i, k := range keys {
		e, ok := l.locks[k]
		if !ok {
			e = &lockEntry{}
			l.locks[k] = e
		}
		e.refs++
		entries[i] = e
	}
	l.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
	}

	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
		l.mu.Lock()
		for i, k := range keys {
			entries[i].refs--
			if entries[i].refs == 0 {
				delete(l.locks, k)
			}
		}
		l.mu.Unlock()
	}
}

func (l *accountLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
