package captcha

import (
	"sync"

	"gatekeeper/internal/domain"
)

// Outcome is the terminal state of one user's challenge
type Outcome int

const (
	Pending Outcome = iota
	Passed
	Failed
	CancelledByAdmin
)

// String returns a log-friendly outcome name
func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case CancelledByAdmin:
		return "cancelled_by_admin"
	}
	return "unknown"
}

// Terminal reports whether the outcome is final
func (o Outcome) Terminal() bool {
	return o != Pending
}

// Task tracks one user's challenge through to its single terminal outcome
type Task struct {
	User domain.User

	mu      sync.Mutex
	outcome Outcome
}

// NewTask creates a pending task for the given user
func NewTask(user domain.User) *Task {
	return &Task{User: user}
}

// Outcome returns the task's current outcome
func (t *Task) Outcome() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outcome
}

// resolve moves the task from Pending to a terminal outcome.
// It reports whether this call won; a second terminal signal loses
// and must not apply side effects.
func (t *Task) resolve(o Outcome) bool {
	if !o.Terminal() {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.outcome.Terminal() {
		return false
	}
	t.outcome = o
	return true
}
