// Package autosave debounces editor saves inside a bubbletea program.
package autosave

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const DefaultDelay = 800 * time.Millisecond

// FireMsg is delivered when a scheduled save's delay elapses
type FireMsg struct {
	Key string
	Gen int
}

// Debouncer tracks one pending save per key. Rescheduling a key invalidates
// every earlier tick for it.
type Debouncer struct {
	Delay time.Duration
	gens  map[string]int
	armed map[string]bool
}

func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		Delay: delay,
		gens:  make(map[string]int),
		armed: make(map[string]bool),
	}
}

// Schedule returns a command that fires FireMsg after Delay
func (d *Debouncer) Schedule(key string) tea.Cmd {
	d.gens[key]++
	d.armed[key] = true
	gen := d.gens[key]
	return tea.Tick(d.Delay, func(time.Time) tea.Msg {
		return FireMsg{Key: key, Gen: gen}
	})
}

// Due reports whether msg is the latest tick for its key and disarms it
func (d *Debouncer) Due(msg FireMsg) bool {
	if !d.armed[msg.Key] || d.gens[msg.Key] != msg.Gen {
		return false
	}
	d.armed[msg.Key] = false
	return true
}

// Cancel drops the pending save for key. Returns true if one was pending.
func (d *Debouncer) Cancel(key string) bool {
	was := d.armed[key]
	d.armed[key] = false
	d.gens[key]++
	return was
}

func (d *Debouncer) Pending(key string) bool {
	return d.armed[key]
}
