package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyHandleResolvesToZeroInfo(t *testing.T) {
	s := NewStore()
	info, err := s.Get(Handle{})
	require.NoError(t, err)
	assert.Equal(t, Info{}, info)
}

func TestUnresolvableSourceDegradesToZeroInfo(t *testing.T) {
	s := NewStore()
	info, err := s.Get(Handle{Source: "/nonexistent/does-not-exist.png"})
	require.NoError(t, err)
	assert.Equal(t, Info{}, info)
}

func TestHandleIsEmpty(t *testing.T) {
	assert.True(t, Handle{}.IsEmpty())
	assert.False(t, Handle{Source: "bg.png"}.IsEmpty())
}
