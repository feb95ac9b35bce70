package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutRegistrationIsUnsupported(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := New()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNewUsesRegisteredProvider(t *testing.T) {
	orig := NewProviderFunc
	want := &Provider{}
	NewProviderFunc = func() (*Provider, error) { return want, nil }
	defer func() { NewProviderFunc = orig }()

	got, err := New()
	require.NoError(t, err)
	assert.Same(t, want, got)
}
