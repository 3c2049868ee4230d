package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInflightGuard(t *testing.T) {
	g := newInflightGuard(time.Minute)

	assert.True(t, g.acquire("browser-a"))
	assert.True(t, g.pending("browser-a"))
	assert.False(t, g.acquire("browser-a"), "second trigger while pending is ignored")
	assert.True(t, g.acquire("browser-b"), "other browsers are independent")

	g.release("browser-a")
	assert.False(t, g.pending("browser-a"))
	assert.True(t, g.acquire("browser-a"))
}

func TestInflightGuard_Expires(t *testing.T) {
	g := newInflightGuard(20 * time.Millisecond)

	assert.True(t, g.acquire("browser-a"))
	assert.Eventually(t, func() bool { return g.acquire("browser-a") }, time.Second, 10*time.Millisecond)
}
