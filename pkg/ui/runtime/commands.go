package runtime

import "github.com/museun/too-sub001/pkg/ui/backend"

// CommandQueue collects backend commands issued during a frame. They are
// delivered in order at the start of the next frame's command flush.
type CommandQueue struct {
	items []backend.Command
}

// Push appends a command.
func (q *CommandQueue) Push(cmd backend.Command) {
	q.items = append(q.items, cmd)
}

// Drain hands every queued command to fn, oldest first, and empties the queue.
func (q *CommandQueue) Drain(fn func(backend.Command)) {
	items := q.items
	q.items = nil
	for _, cmd := range items {
		fn(cmd)
	}
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int {
	return len(q.items)
}
