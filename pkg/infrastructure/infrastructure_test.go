package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_EmptyDSN(t *testing.T) {
	pool, err := NewPool(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, pool)
}

func TestNewPool_BadDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz")
	assert.Error(t, err)
}

func TestNewChromedpRenderer(t *testing.T) {
	r := NewChromedpRenderer("/usr/bin/chromium")
	assert.Equal(t, defaultRenderTimeout, r.Timeout)
	assert.Len(t, r.allocatorOptions(), len(NewChromedpRenderer("").allocatorOptions())+1)
	assert.Equal(t, 60*time.Second, NewChromedpRenderer("").Timeout)
}
