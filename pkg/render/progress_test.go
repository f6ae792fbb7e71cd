package render

import (
	"strings"
	"sync"
	"testing"
)

// recordingSink captures every published percentage
type recordingSink struct {
	mu       sync.Mutex
	percents []int
}

func (r *recordingSink) WriteProgress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.percents = append(r.percents, percent)
}

func TestProgressTrackerCompletes(t *testing.T) {
	sink := &recordingSink{}
	tracker := NewProgressTracker(4, sink)

	if tracker.Percent() != 0 {
		t.Errorf("Percent() = %d before any completion", tracker.Percent())
	}

	for id := 0; id < 4; id++ {
		tracker.Done(id)
	}

	if !tracker.AllDone() {
		t.Error("AllDone() = false after all completions")
	}
	if tracker.Percent() != 100 {
		t.Errorf("Percent() = %d, want 100", tracker.Percent())
	}
	if tracker.CompletedTasks() != 4 {
		t.Errorf("CompletedTasks() = %d, want 4", tracker.CompletedTasks())
	}
}

// TestProgressMonotonic verifies published percentages never decrease, even
// with concurrent completions of distinct task ids
func TestProgressMonotonic(t *testing.T) {
	const tasks = 200
	sink := &recordingSink{}
	tracker := NewProgressTracker(tasks, sink)

	var wg sync.WaitGroup
	for id := 0; id < tasks; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tracker.Done(id)
		}(id)
	}
	wg.Wait()

	last := -1
	for i, p := range sink.percents {
		if p < last {
			t.Fatalf("progress went backwards at publish %d: %d after %d", i, p, last)
		}
		last = p
	}
	if last != 100 {
		t.Errorf("final published progress = %d, want 100", last)
	}
}

func TestProgressPartial(t *testing.T) {
	tracker := NewProgressTracker(3, nil)
	tracker.Done(1)
	if got := tracker.Percent(); got != 33 {
		t.Errorf("Percent() = %d after 1 of 3, want 33", got)
	}
	if tracker.AllDone() {
		t.Error("AllDone() = true with tasks outstanding")
	}
}

func TestConsoleProgressOverwritesLine(t *testing.T) {
	var out strings.Builder
	console := &ConsoleProgress{Out: &out}

	console.WriteProgress(25)
	console.WriteProgress(100)

	got := out.String()
	if !strings.Contains(got, "\rProgress:  25%") {
		t.Errorf("console output %q missing carriage-return progress line", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("console output should end the line at 100%")
	}
}
