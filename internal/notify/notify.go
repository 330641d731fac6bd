// Package notify builds transient user notifications and shows them on a
// Surface, removing each one after a delay unless it is dismissed first.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// AutoDismissDelay is how long a notification stays visible.
const AutoDismissDelay = 5 * time.Second

var styleClasses = map[Kind]string{
	KindSuccess: "alert-success",
	KindError:   "alert-danger",
	KindWarning: "alert-warning",
	KindInfo:    "alert-info",
}

type Notification struct {
	ID          string        `json:"id"`
	Message     string        `json:"message"`
	Kind        Kind          `json:"kind"`
	Style       string        `json:"style"`
	Dismissible bool          `json:"dismissible"`
	AutoDismiss time.Duration `json:"auto_dismiss"`
}

// New describes a notification. Unknown kinds are rendered as info.
func New(message string, kind Kind) Notification {
	style, ok := styleClasses[kind]
	if !ok {
		kind = KindInfo
		style = styleClasses[KindInfo]
	}
	return Notification{
		ID:          uuid.NewString(),
		Message:     message,
		Kind:        kind,
		Style:       style,
		Dismissible: true,
		AutoDismiss: AutoDismissDelay,
	}
}

// Surface is where notifications are displayed.
type Surface interface {
	Add(n Notification)
	Remove(id string)
}

type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Notifier struct {
	surface   Surface
	afterFunc AfterFunc

	mu      sync.Mutex
	pending map[string]Timer
}

// NewNotifier uses time.AfterFunc when afterFunc is nil.
func NewNotifier(surface Surface, afterFunc AfterFunc) *Notifier {
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	return &Notifier{
		surface:   surface,
		afterFunc: afterFunc,
		pending:   make(map[string]Timer),
	}
}

// Show adds a notification to the surface and schedules its removal.
func (n *Notifier) Show(message string, kind Kind) Notification {
	note := New(message, kind)
	n.surface.Add(note)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[note.ID] = n.afterFunc(note.AutoDismiss, func() { n.expire(note.ID) })
	return note
}

func (n *Notifier) Success(message string) Notification { return n.Show(message, KindSuccess) }
func (n *Notifier) Error(message string) Notification   { return n.Show(message, KindError) }
func (n *Notifier) Warning(message string) Notification { return n.Show(message, KindWarning) }
func (n *Notifier) Info(message string) Notification    { return n.Show(message, KindInfo) }

// Dismiss closes a notification before its delay runs out. It reports
// whether the notification was still shown.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	t, ok := n.pending[id]
	delete(n.pending, id)
	n.mu.Unlock()

	if !ok {
		return false
	}
	t.Stop()
	n.surface.Remove(id)
	return true
}

func (n *Notifier) expire(id string) {
	n.mu.Lock()
	_, ok := n.pending[id]
	delete(n.pending, id)
	n.mu.Unlock()

	if ok {
		n.surface.Remove(id)
	}
}
