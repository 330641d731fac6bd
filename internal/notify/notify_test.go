package notify

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	mu     sync.Mutex
	delays []time.Duration
	funcs  []func()
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{}
	c.delays = append(c.delays, d)
	c.funcs = append(c.funcs, f)
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	f := c.funcs[i]
	c.mu.Unlock()
	f()
}

func TestNew(t *testing.T) {
	type testCase struct {
		name          string
		kind          Kind
		expectedKind  Kind
		expectedStyle string
	}
	testCases := []testCase{
		{name: "success", kind: KindSuccess, expectedKind: KindSuccess, expectedStyle: "alert-success"},
		{name: "error", kind: KindError, expectedKind: KindError, expectedStyle: "alert-danger"},
		{name: "warning", kind: KindWarning, expectedKind: KindWarning, expectedStyle: "alert-warning"},
		{name: "info", kind: KindInfo, expectedKind: KindInfo, expectedStyle: "alert-info"},
		{name: "unknown_renders_as_info", kind: Kind("fatal"), expectedKind: KindInfo, expectedStyle: "alert-info"},
		{name: "empty_renders_as_info", kind: "", expectedKind: KindInfo, expectedStyle: "alert-info"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := New("Saved", tc.kind)
			assert.Equal(t, "Saved", n.Message)
			assert.Equal(t, tc.expectedKind, n.Kind)
			assert.Equal(t, tc.expectedStyle, n.Style)
			assert.True(t, n.Dismissible)
			assert.Equal(t, 5*time.Second, n.AutoDismiss)
			assert.NotEmpty(t, n.ID)
		})
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, New("a", KindInfo).ID, New("a", KindInfo).ID)
}

func TestNotifier_AutoDismiss(t *testing.T) {
	clock := &fakeClock{}
	surface := NewMemorySurface()
	n := NewNotifier(surface, clock.AfterFunc)

	first := n.Success("Book saved")
	second := n.Error("Failed to delete")

	items := surface.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, []time.Duration{AutoDismissDelay, AutoDismissDelay}, clock.delays)

	clock.fire(0)

	items = surface.Items()
	require.Len(t, items, 1)
	assert.Equal(t, second.ID, items[0].ID)
}

func TestNotifier_Dismiss(t *testing.T) {
	clock := &fakeClock{}
	surface := NewMemorySurface()
	n := NewNotifier(surface, clock.AfterFunc)

	note := n.Warning("Careful")
	require.True(t, n.Dismiss(note.ID))

	assert.Empty(t, surface.Items())
	assert.True(t, clock.timers[0].stopped)
	assert.False(t, n.Dismiss(note.ID), "second dismiss")

	// A timer that fires after a manual dismiss does nothing.
	other := n.Info("Still here")
	clock.fire(0)
	items := surface.Items()
	require.Len(t, items, 1)
	assert.Equal(t, other.ID, items[0].ID)
}

func TestNotifier_SameMessageTwice(t *testing.T) {
	surface := NewMemorySurface()
	n := NewNotifier(surface, (&fakeClock{}).AfterFunc)

	n.Info("Loading")
	n.Info("Loading")

	assert.Len(t, surface.Items(), 2)
}

func TestTerminalSurface(t *testing.T) {
	var buf bytes.Buffer
	s := NewTerminalSurface(&buf)

	s.Add(New("Logged in", KindSuccess))
	s.Add(New("HTTP error! status: 500", KindError))
	s.Remove("anything")

	out := buf.String()
	assert.Contains(t, out, "SUCCESS")
	assert.Contains(t, out, "Logged in")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "HTTP error! status: 500")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}
