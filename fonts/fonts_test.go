package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyHandleResolvesToZeroFace(t *testing.T) {
	r := NewRegistry()
	f, err := r.Get(Handle{})
	require.NoError(t, err)
	assert.Equal(t, Metrics{}, f.Metrics())
}

func TestUnresolvableFamilyDegradesToZeroMetrics(t *testing.T) {
	r := NewRegistry()
	f, err := r.Get(Handle{Family: "definitely-not-an-installed-font-xyz", Size: 48})
	require.NoError(t, err)
	assert.Equal(t, Metrics{}, f.Metrics())
}

func TestHandleIsEmpty(t *testing.T) {
	assert.True(t, Handle{}.IsEmpty())
	assert.False(t, Handle{Family: "serif"}.IsEmpty())
}
