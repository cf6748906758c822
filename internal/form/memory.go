package form

import "sync"

// MemoryInput is a fixed email value.
type MemoryInput string

func (m MemoryInput) Value() string { return string(m) }

// MemoryRegion records visibility and text. It is safe for concurrent use so
// that overlapping submissions can share one form.
type MemoryRegion struct {
	mu      sync.Mutex
	visible bool
	text    string
}

func NewMemoryRegion(visible bool) *MemoryRegion {
	return &MemoryRegion{visible: visible}
}

func (r *MemoryRegion) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
}

func (r *MemoryRegion) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
}

func (r *MemoryRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
}

func (r *MemoryRegion) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

func (r *MemoryRegion) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// MemoryNotifier collects alerts in order.
type MemoryNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (n *MemoryNotifier) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, msg)
}

// Alerts returns a copy of the alerts received so far.
func (n *MemoryNotifier) Alerts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.alerts))
	copy(out, n.alerts)
	return out
}

// Last returns the most recent alert, or "" when there is none.
func (n *MemoryNotifier) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.alerts) == 0 {
		return ""
	}
	return n.alerts[len(n.alerts)-1]
}

// Memory is an in-memory form in its initial page state: the form region is
// visible and the message region hidden.
type Memory struct {
	Input    MemoryInput
	Form     *MemoryRegion
	Message  *MemoryRegion
	Notifier *MemoryNotifier
}

func NewMemory(email string) *Memory {
	return &Memory{
		Input:    MemoryInput(email),
		Form:     NewMemoryRegion(true),
		Message:  NewMemoryRegion(false),
		Notifier: &MemoryNotifier{},
	}
}

// Elements returns the Form view of m.
func (m *Memory) Elements() Form {
	return Form{
		Email:    m.Input,
		Form:     m.Form,
		Message:  m.Message,
		Notifier: m.Notifier,
	}
}
