package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// MemorySurface keeps shown notifications in display order.
type MemorySurface struct {
	mu    sync.Mutex
	items []Notification
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (s *MemorySurface) Add(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
}

func (s *MemorySurface) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *MemorySurface) Items() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.items...)
}

var kindColors = map[Kind]string{
	KindSuccess: "#22C55E",
	KindError:   "#EF4444",
	KindWarning: "#F59E0B",
	KindInfo:    "#3B82F6",
}

// TerminalSurface prints each notification as one styled line. Printed
// lines cannot be taken back, so Remove does nothing.
type TerminalSurface struct {
	mu     sync.Mutex
	w      io.Writer
	labels map[Kind]lipgloss.Style
	text   lipgloss.Style
}

func NewTerminalSurface(w io.Writer) *TerminalSurface {
	r := lipgloss.NewRenderer(w)
	labels := make(map[Kind]lipgloss.Style, len(kindColors))
	for kind, color := range kindColors {
		labels[kind] = r.NewStyle().
			Foreground(lipgloss.Color(color)).
			Bold(true).
			PaddingRight(1)
	}
	return &TerminalSurface{
		w:      w,
		labels: labels,
		text:   r.NewStyle(),
	}
}

func (s *TerminalSurface) Add(n Notification) {
	label, ok := s.labels[n.Kind]
	if !ok {
		label = s.labels[KindInfo]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, label.Render(strings.ToUpper(string(n.Kind)))+s.text.Render(n.Message))
}

func (s *TerminalSurface) Remove(string) {}
