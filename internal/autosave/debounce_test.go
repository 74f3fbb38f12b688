package autosave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, New(0).Delay)
	assert.Equal(t, time.Second, New(time.Second).Delay)
}

func TestOnlyLatestScheduleIsDue(t *testing.T) {
	d := New(time.Millisecond)

	first := d.Schedule("n1")
	second := d.Schedule("n1")
	require.NotNil(t, first)
	require.NotNil(t, second)

	stale := first().(FireMsg)
	latest := second().(FireMsg)

	assert.False(t, d.Due(stale))
	assert.True(t, d.Pending("n1"))
	assert.True(t, d.Due(latest))
	assert.False(t, d.Pending("n1"))

	// a tick only fires once
	assert.False(t, d.Due(latest))
}

func TestKeysAreIndependent(t *testing.T) {
	d := New(time.Millisecond)
	a := d.Schedule("a")().(FireMsg)
	b := d.Schedule("b")().(FireMsg)

	assert.True(t, d.Due(b))
	assert.True(t, d.Due(a))
}

func TestCancel(t *testing.T) {
	d := New(time.Millisecond)
	msg := d.Schedule("n1")().(FireMsg)

	assert.True(t, d.Cancel("n1"))
	assert.False(t, d.Pending("n1"))
	assert.False(t, d.Due(msg))
	assert.False(t, d.Cancel("n1"))
}
