package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()

	t.Run("Serializes holders of the same key", func(t *testing.T) {
		counter := 0
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := k.Lock("u1/h1")
				defer unlock()
				v := counter
				counter = v + 1
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, counter)
	})

	t.Run("Releases entries when idle", func(t *testing.T) {
		unlockA := k.Lock("a")
		unlockB := k.Lock("b")
		assert.Equal(t, 2, k.size())

		unlockA()
		unlockB()
		assert.Equal(t, 0, k.size())
	})
}
