package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClientReadsAsMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	val, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, c.Set(ctx, "user:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:1"))
}

func TestUnreachableRedisReadsAsMiss(t *testing.T) {
	// nothing listens here; every operation must degrade to a miss
	c := New("127.0.0.1:1", "", 0)
	ctx := context.Background()

	val, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, val)

	assert.NoError(t, c.Set(ctx, "user:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:1"))
}
