package psim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnRegistryRoundRobin(t *testing.T) {
	a, b, c := mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0}, mgl64.Vec3{3, 0, 0}
	r := NewSpawnRegistry(a, b)
	r.Register(c)
	require.Equal(t, 3, r.Len())

	var got []mgl64.Vec3
	for i := 0; i < 5; i++ {
		p, err := r.Take()
		require.NoError(t, err)
		got = append(got, p)
	}
	assert.Equal(t, []mgl64.Vec3{a, b, c, a, b}, got)
	// Points are reused, never consumed.
	assert.Equal(t, 3, r.Len())
}

func TestSpawnRegistryEmpty(t *testing.T) {
	r := NewSpawnRegistry()
	assert.True(t, r.Empty())

	_, err := r.Take()
	assert.ErrorIs(t, err, ErrNoSpawnPoint)

	r.Register(mgl64.Vec3{})
	assert.False(t, r.Empty())
	r.Clear()
	assert.True(t, r.Empty())
	_, err = r.Take()
	assert.ErrorIs(t, err, ErrNoSpawnPoint)
}

func TestSpawnRegistryPointsIsCopy(t *testing.T) {
	r := NewSpawnRegistry(mgl64.Vec3{1, 2, 3})
	pts := r.Points()
	pts[0] = mgl64.Vec3{}

	p, err := r.Take()
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, p)
}
