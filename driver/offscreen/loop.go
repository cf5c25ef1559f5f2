// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"slices"
	"sync"
	"time"

	"cogentcore.org/arview/arview"
)

// Loop is a single-threaded event loop driven by its owner. Tasks,
// animation frames and timers only run inside [Loop.Flush], [Loop.Frame]
// and [Loop.Advance], on the calling goroutine. Tasks may be posted
// from any goroutine.
type Loop struct {
	mu sync.Mutex

	tasks []func()

	frames    []frameRequest
	nextFrame arview.FrameID

	now       time.Duration
	timers    []*timer
	nextTimer int
}

type frameRequest struct {
	id arview.FrameID
	f  func()
}

type timer struct {
	id int
	at time.Duration
	f  func()
}

// NewLoop returns a new empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Post adds a task to run on the loop.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, f)
	l.mu.Unlock()
}

// RequestFrame implements [arview.FrameScheduler].
func (l *Loop) RequestFrame(f func()) arview.FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextFrame++
	l.frames = append(l.frames, frameRequest{id: l.nextFrame, f: f})
	return l.nextFrame
}

// CancelFrame implements [arview.FrameScheduler].
func (l *Loop) CancelFrame(id arview.FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = slices.DeleteFunc(l.frames, func(fr frameRequest) bool { return fr.id == id })
}

// AfterFunc implements [arview.Timers] on the virtual clock of the loop.
func (l *Loop) AfterFunc(d time.Duration, f func()) (stop func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextTimer++
	t := &timer{id: l.nextTimer, at: l.now + d, f: f}
	l.timers = append(l.timers, t)
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.timers = slices.DeleteFunc(l.timers, func(o *timer) bool { return o == t })
	}
}

// Flush runs posted tasks, including those posted while
// flushing, until there are none left. It returns how many ran.
func (l *Loop) Flush() int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return n
		}
		f := l.tasks[0]
		l.tasks = l.tasks[1:]
		l.mu.Unlock()
		f()
		n++
	}
}

// Frame flushes tasks, then runs the animation frames requested
// before it was called, as a browser does before a repaint, then
// flushes again. It returns how many frame callbacks ran.
func (l *Loop) Frame() int {
	l.Flush()
	l.mu.Lock()
	frs := l.frames
	l.frames = nil
	l.mu.Unlock()
	for _, fr := range frs {
		fr.f()
	}
	l.Flush()
	return len(frs)
}

// Frames runs [Loop.Frame] n times and returns the total
// number of frame callbacks that ran.
func (l *Loop) Frames(n int) int {
	total := 0
	for range n {
		total += l.Frame()
	}
	return total
}

// Advance moves the virtual clock forward by d, running due
// timers in order of their deadlines, and flushes tasks.
func (l *Loop) Advance(d time.Duration) {
	l.Flush()
	l.mu.Lock()
	end := l.now + d
	l.mu.Unlock()
	for {
		l.mu.Lock()
		var next *timer
		for _, t := range l.timers {
			if t.at <= end && (next == nil || t.at < next.at || (t.at == next.at && t.id < next.id)) {
				next = t
			}
		}
		if next == nil {
			l.now = end
			l.mu.Unlock()
			break
		}
		l.now = next.at
		l.timers = slices.DeleteFunc(l.timers, func(o *timer) bool { return o == next })
		l.mu.Unlock()
		next.f()
		l.Flush()
	}
	l.Flush()
}

// Now returns the time on the virtual clock.
func (l *Loop) Now() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// PendingFrames returns the number of requested frames that have not run.
func (l *Loop) PendingFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// PendingTimers returns the number of timers that have not fired or been stopped.
func (l *Loop) PendingTimers() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}
