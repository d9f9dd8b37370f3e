package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(DefaultConfig(), &stubDice{totals: []int{2}})

	room, err := reg.Create("ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "ABCD1234", room.Id)
	assert.Equal(t, 1, reg.Len())

	_, err = reg.Create("ABCD1234")
	assert.ErrorIs(t, err, ErrRoomExists)

	got, err := reg.Get("ABCD1234")
	require.NoError(t, err)
	assert.Same(t, room, got)

	_, err = reg.Get("missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	reg.Delete("ABCD1234")
	assert.Equal(t, 0, reg.Len())
	_, err = reg.Get("ABCD1234")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistryConcurrentCreates(t *testing.T) {
	reg := NewRegistry(DefaultConfig(), &stubDice{totals: []int{2}})

	var wg sync.WaitGroup
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := reg.Create(id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()
	assert.Equal(t, len(ids), reg.Len())
}
