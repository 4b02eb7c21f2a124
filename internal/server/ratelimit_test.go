package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newClientLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"), "burst spent")
	assert.True(t, l.allow("b"), "clients have separate buckets")

	now = now.Add(time.Second)
	assert.True(t, l.allow("a"), "one token refilled")

	now = now.Add(5 * time.Minute)
	assert.True(t, l.allow("b"))
	assert.Equal(t, 1, l.sweep(3*time.Minute), "idle client a forgotten")
}

func TestClientLimiter_Defaults(t *testing.T) {
	l := newClientLimiter(0, 0)
	assert.True(t, l.allow("x"))
	assert.Equal(t, 1, l.retryAfter())
	assert.Equal(t, 4, newClientLimiter(0.25, 1).retryAfter())
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientKey(r))
	r.RemoteAddr = "[::1]"
	assert.Equal(t, "::1", clientKey(r))
}
