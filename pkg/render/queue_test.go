package render

import (
	"sync"
	"testing"
)

// TestQueueDrainOrder verifies single-consumer pops return tasks in push
// order and then report empty
func TestQueueDrainOrder(t *testing.T) {
	queue := NewRenderTaskQueue(3)
	for i := 0; i < 3; i++ {
		queue.Push(newRenderTask(i, i*64, 0, 64, 64, 1))
	}
	queue.CloseInput()

	for i := 0; i < 3; i++ {
		task, ok := queue.Pop()
		if !ok {
			t.Fatalf("pop %d reported empty with tasks remaining", i)
		}
		if task.ID != i {
			t.Errorf("pop %d returned task %d", i, task.ID)
		}
	}

	if _, ok := queue.Pop(); ok {
		t.Error("pop on drained queue should report empty")
	}
}

// TestQueueExactlyOnce hammers the queue with concurrent consumers and
// checks every task is delivered to exactly one of them
func TestQueueExactlyOnce(t *testing.T) {
	const numTasks = 2000
	const numConsumers = 8

	queue := NewRenderTaskQueue(numTasks)
	for i := 0; i < numTasks; i++ {
		queue.Push(newRenderTask(i, 0, 0, 1, 1, 1))
	}
	queue.CloseInput()

	var mu sync.Mutex
	delivered := make(map[int]int)

	var wg sync.WaitGroup
	for c := 0; c < numConsumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, ok := queue.Pop()
				if !ok {
					return
				}
				mu.Lock()
				delivered[task.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(delivered) != numTasks {
		t.Fatalf("delivered %d distinct tasks, want %d", len(delivered), numTasks)
	}
	for id, count := range delivered {
		if count != 1 {
			t.Errorf("task %d delivered %d times", id, count)
		}
	}
}

// TestQueueOverCapacityPanics verifies pushing past capacity is treated as
// a scheduling bug
func TestQueueOverCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on over-capacity push")
		}
	}()

	queue := NewRenderTaskQueue(1)
	queue.Push(newRenderTask(0, 0, 0, 1, 1, 1))
	queue.Push(newRenderTask(1, 0, 0, 1, 1, 1))
}
