package render

// RenderTaskQueue is a thread-safe work queue drained by the worker pool.
// All tasks are pushed before any worker starts popping; each enqueued task
// is delivered to exactly one popper. Built on a buffered channel sized to
// the task count, closed after the last push.
type RenderTaskQueue struct {
	tasks chan *RenderTask
}

// NewRenderTaskQueue creates a queue with room for capacity tasks
func NewRenderTaskQueue(capacity int) *RenderTaskQueue {
	return &RenderTaskQueue{
		tasks: make(chan *RenderTask, capacity),
	}
}

// Push enqueues a fully-formed task. Pushing more tasks than the queue's
// capacity is a scheduling bug and would block forever, so it panics
// instead.
func (q *RenderTaskQueue) Push(task *RenderTask) {
	select {
	case q.tasks <- task:
	default:
		panic("render task queue over capacity")
	}
}

// CloseInput marks the end of scheduling. Pops drain the remaining tasks and
// then report empty.
func (q *RenderTaskQueue) CloseInput() {
	close(q.tasks)
}

// Pop removes and returns one task, or reports empty once the queue is
// closed and drained. Safe for concurrent callers.
func (q *RenderTaskQueue) Pop() (*RenderTask, bool) {
	task, ok := <-q.tasks
	return task, ok
}

// Len returns the number of tasks currently queued
func (q *RenderTaskQueue) Len() int {
	return len(q.tasks)
}
