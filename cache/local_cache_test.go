package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string
	Count int
}

func TestLocalCacheJSON(t *testing.T) {
	c := NewLocalCache(1 << 20)

	require.NoError(t, c.Set("entry", entry{Name: "a", Count: 3}, time.Minute))
	var got entry
	_, err := c.Get("entry", &got)
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "a", Count: 3}, got)
	assert.Equal(t, int64(1), c.Entries())
}

func TestLocalCacheMissing(t *testing.T) {
	c := NewLocalCache(1 << 20)

	var got entry
	_, err := c.Get("missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetUint64("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalCacheScalars(t *testing.T) {
	c := NewLocalCache(1 << 20)

	require.NoError(t, c.SetUint64("head", 19_000_123, time.Minute))
	head, err := c.GetUint64("head")
	require.NoError(t, err)
	assert.Equal(t, uint64(19_000_123), head)

	require.NoError(t, c.SetBool("flag", true, time.Minute))
	flag, err := c.GetBool("flag")
	require.NoError(t, err)
	assert.True(t, flag)

	_, err = c.GetBool("head")
	assert.Error(t, err)
}

func TestLocalCacheBadJSONIsEvicted(t *testing.T) {
	c := NewLocalCache(1 << 20)

	require.NoError(t, c.SetUint64("raw", 1, time.Minute))
	var got entry
	_, err := c.Get("raw", &got)
	assert.Error(t, err)

	_, err = c.GetUint64("raw")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUint64Bytes(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 1 << 40, ^uint64(0)} {
		assert.Equal(t, v, btoi64(ui64tob(v)))
	}
}
