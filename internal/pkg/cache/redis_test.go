package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	c := NewRedisCache("localhost:0", "shop-api")
	t.Cleanup(func() { require.NoError(t, c.Close()) })

	assert.Equal(t, "shop-api:lock:seed", c.GenerateKey("lock", "seed"))
}
