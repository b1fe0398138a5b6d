package ledger

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccountLocks_ReleasesEntries(t *testing.T) {
	l := newAccountLocks()
	a, b := uuid.New(), uuid.New()

	unlock := l.lock(a, b, a, uuid.Nil)
	assert.Equal(t, 2, l.size())
	unlock()
	assert.Equal(t, 0, l.size())
}

func TestAccountLocks_Serializes(t *testing.T) {
	l := newAccountLocks()
	a, b := uuid.New(), uuid.New()

	counter := 0
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Alternate argument order; locking must not deadlock.
			var unlock func()
			if i%2 == 0 {
				unlock = l.lock(a, b)
			} else {
				unlock = l.lock(b, a)
			}
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, l.size())
}
