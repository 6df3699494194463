package backend

import (
	"sync"

	"github.com/museun/too-sub001/pkg/ui/terminal"
)

// Command is a request from the application to the backend.
type Command interface {
	isCommand()
}

// SetTitle sets the terminal window title.
type SetTitle struct {
	Title string
}

// SwitchMainScreen leaves the alternate screen and stops drawing.
type SwitchMainScreen struct{}

// SwitchAltScreen returns to the alternate screen and resumes drawing.
type SwitchAltScreen struct{}

// RequestQuit asks the backend to report Quit.
type RequestQuit struct{}

func (SetTitle) isCommand()         {}
func (SwitchMainScreen) isCommand() {}
func (SwitchAltScreen) isCommand()  {}
func (RequestQuit) isCommand()      {}

// Queue holds commands until a backend applies them and tracks the
// single Quit delivery. It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	cmds   []Command
	closed bool
	sent   bool
}

// Push appends a command.
func (q *Queue) Push(cmd Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cmds = append(q.cmds, cmd)
}

// Pop removes the oldest command.
func (q *Queue) Pop() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.cmds) == 0 {
		return nil, false
	}
	cmd := q.cmds[0]
	q.cmds[0] = nil
	q.cmds = q.cmds[1:]
	return cmd, true
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cmds)
}

// Close marks the backend as finished. Pending commands are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cmds = nil
}

// Closed reports whether Close was called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Quit returns terminal.Quit the first time it is called after Close,
// and nil otherwise.
func (q *Queue) Quit() terminal.Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed || q.sent {
		return nil
	}
	q.sent = true
	return terminal.Quit{}
}

// Intercept maps the configured Ctrl-C and Ctrl-Z keys to commands.
// onAlt selects which switch Ctrl-Z produces.
func (c TermConfig) Intercept(ev terminal.Event, onAlt bool) (Command, bool) {
	key, ok := ev.(terminal.KeyPressed)
	if !ok || key.Modifiers != terminal.ModCtrl || key.Key.Code != terminal.KeyChar {
		return nil, false
	}
	switch key.Key.Rune {
	case 'c', 'C':
		if c.CtrlCQuits {
			return RequestQuit{}, true
		}
	case 'z', 'Z':
		if c.CtrlZSwitches {
			if onAlt {
				return SwitchMainScreen{}, true
			}
			return SwitchAltScreen{}, true
		}
	}
	return nil, false
}
