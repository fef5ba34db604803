package engine

import "container/heap"

// timer is a callback due at a simulated time; seq keeps FIFO order among equal deadlines
type timer struct {
	due float64
	seq uint64
	fn  func()
}

type timerHeap []timer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(timer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = timer{}
	*h = old[:n-1]
	return t
}

// Scheduler runs deferred callbacks at tick boundaries on simulated time
// Single callbacks cannot be cancelled, so they must tolerate the world having
// changed; Cancel drops all of them at once
type Scheduler struct {
	now    float64
	seq    uint64
	timers timerHeap
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run on the first tick boundary at or past now+delay
func (s *Scheduler) After(delay float64, fn func()) {
	if fn == nil {
		return
	}
	if !(delay > 0) {
		delay = 0
	}
	s.seq++
	heap.Push(&s.timers, timer{due: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves the clock to now and runs every callback that was due, in
// deadline order. Callbacks scheduled while running wait for the next boundary
func (s *Scheduler) Advance(now float64) int {
	if now > s.now {
		s.now = now
	}

	var due []timer
	for len(s.timers) > 0 && s.timers[0].due <= s.now {
		due = append(due, heap.Pop(&s.timers).(timer))
	}
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Now returns the scheduler clock
func (s *Scheduler) Now() float64 {
	return s.now
}

// Pending returns the number of callbacks not yet run
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Cancel drops every pending callback; the clock keeps its time
func (s *Scheduler) Cancel() {
	s.timers = nil
}
