// Package animation steps through frames on game ticks.
package animation

import "time"

// Ticker advances a frame index every few ticks. Per-frame durations are
// supported for sources like GIFs that carry their own delays.
type Ticker struct {
	ticks   []int // ticks to hold each frame
	counter int
	cur     int
}

// NewTicker holds each of total frames for ticksPerFrame ticks.
func NewTicker(ticksPerFrame, total int) *Ticker {
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	ticks := make([]int, total)
	for i := range ticks {
		ticks[i] = ticksPerFrame
	}
	return &Ticker{ticks: ticks}
}

// NewTickerWithDelays converts frame delays into ticks at tps ticks per
// second. Every frame is shown for at least one tick.
func NewTickerWithDelays(delays []time.Duration, tps int) *Ticker {
	ticks := make([]int, len(delays))
	for i, d := range delays {
		ticks[i] = TicksFor(d, tps)
	}
	return &Ticker{ticks: ticks}
}

// TicksFor rounds d to the nearest whole number of ticks, minimum one.
func TicksFor(d time.Duration, tps int) int {
	n := int((d*time.Duration(tps) + time.Second/2) / time.Second)
	if n < 1 {
		return 1
	}
	return n
}

// Tick advances one game tick and reports whether a full cycle just ended.
func (t *Ticker) Tick() bool {
	if len(t.ticks) == 0 {
		return false
	}
	t.counter++
	if t.counter < t.ticks[t.cur] {
		return false
	}
	t.counter = 0
	t.cur++
	if t.cur == len(t.ticks) {
		t.cur = 0
		return true
	}
	return false
}

// Current is the index of the frame to show.
func (t *Ticker) Current() int { return t.cur }

func (t *Ticker) Total() int { return len(t.ticks) }

// Reset rewinds to the first frame.
func (t *Ticker) Reset() {
	t.cur, t.counter = 0, 0
}
