package form

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// TerminalInput yields a prefilled value as given, or prompts once on out and
// reads a line from in without its line terminator.
type TerminalInput struct {
	prefill string
	prompt  string
	in      io.Reader
	out     io.Writer

	once  sync.Once
	value string
}

func NewTerminalInput(in io.Reader, out io.Writer, prefill, prompt string) *TerminalInput {
	return &TerminalInput{prefill: prefill, prompt: prompt, in: in, out: out}
}

func (t *TerminalInput) Value() string {
	t.once.Do(func() {
		if t.prefill != "" || t.in == nil {
			t.value = t.prefill
			return
		}
		if t.out != nil && t.prompt != "" {
			fmt.Fprint(t.out, t.prompt)
		}
		line, _ := bufio.NewReader(t.in).ReadString('\n')
		t.value = strings.TrimRight(line, "\r\n")
	})
	return t.value
}

// TerminalRegion prints its text to out each time it changes while visible.
type TerminalRegion struct {
	mu      sync.Mutex
	out     io.Writer
	visible bool
	text    string
	printed string
}

func NewTerminalRegion(out io.Writer, visible bool) *TerminalRegion {
	return &TerminalRegion{out: out, visible: visible}
}

func (r *TerminalRegion) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = true
	r.flush()
}

func (r *TerminalRegion) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
}

func (r *TerminalRegion) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.flush()
}

func (r *TerminalRegion) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

func (r *TerminalRegion) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// flush must be called with mu held.
func (r *TerminalRegion) flush() {
	if !r.visible || r.text == "" || r.text == r.printed || r.out == nil {
		return
	}
	fmt.Fprintln(r.out, r.text)
	r.printed = r.text
}

// TerminalNotifier writes each alert on its own line.
type TerminalNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

func (n *TerminalNotifier) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, msg)
}

// NewTerminal wires a form to a terminal. Prompts and the message region go
// to out, alerts to errOut.
func NewTerminal(in io.Reader, out, errOut io.Writer, prefill, prompt string) Form {
	return Form{
		Email:    NewTerminalInput(in, out, prefill, prompt),
		Form:     NewTerminalRegion(nil, true),
		Message:  NewTerminalRegion(out, false),
		Notifier: NewTerminalNotifier(errOut),
	}
}
