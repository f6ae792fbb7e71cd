package render

import (
	"fmt"
	"io"
	"sync/atomic"
)

// ProgressWriter publishes a render progress percentage to some sink.
type ProgressWriter interface {
	WriteProgress(percent int)
}

// ConsoleProgress overwrites a single progress line on a console
type ConsoleProgress struct {
	Out io.Writer
}

// WriteProgress rewrites the progress line in place
func (c *ConsoleProgress) WriteProgress(percent int) {
	fmt.Fprintf(c.Out, "\rProgress: %3d%%", percent)
	if percent >= 100 {
		fmt.Fprintln(c.Out)
	}
}

// ProgressTracker aggregates per-task completion into a percentage. Each
// done-table entry transitions false→true exactly once, written by exactly
// the worker that finished that task, so the flags themselves need no
// synchronization; the running counter behind the published percentage is
// atomic.
type ProgressTracker struct {
	done      []bool
	completed atomic.Int64
	sink      ProgressWriter // May be nil (progress discarded)
}

// NewProgressTracker creates a tracker for totalTasks tasks reporting to
// sink
func NewProgressTracker(totalTasks int, sink ProgressWriter) *ProgressTracker {
	return &ProgressTracker{
		done: make([]bool, totalTasks),
		sink: sink,
	}
}

// TotalTasks returns the size of the done table
func (p *ProgressTracker) TotalTasks() int {
	return len(p.done)
}

// Done records completion of the given task and publishes the updated
// percentage. Must be called exactly once per task id.
func (p *ProgressTracker) Done(taskID int) {
	p.done[taskID] = true
	completed := p.completed.Add(1)
	if p.sink != nil {
		p.sink.WriteProgress(int(completed * 100 / int64(len(p.done))))
	}
}

// CompletedTasks returns the number of completions recorded so far
func (p *ProgressTracker) CompletedTasks() int {
	return int(p.completed.Load())
}

// Percent sums the done table and returns the completion percentage.
// Intended to be called once after the pool has joined; a full pass over the
// table is fine there and cannot read a torn counter.
func (p *ProgressTracker) Percent() int {
	if len(p.done) == 0 {
		return 100
	}
	taskDone := 0
	for _, done := range p.done {
		if done {
			taskDone++
		}
	}
	return taskDone * 100 / len(p.done)
}

// AllDone reports whether every task has completed
func (p *ProgressTracker) AllDone() bool {
	for _, done := range p.done {
		if !done {
			return false
		}
	}
	return true
}
