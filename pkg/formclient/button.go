package formclient

import "sync"

// Button models the submit control.
type Button struct {
	label    string
	disabled bool
	mu       sync.RWMutex
}

// NewButton creates an enabled button with the given label.
func NewButton(label string) *Button {
	return &Button{label: label}
}

func (b *Button) Label() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.label
}

func (b *Button) Disabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.disabled
}

// set replaces label and state and returns the previous label.
func (b *Button) set(label string, disabled bool) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.label
	b.label = label
	b.disabled = disabled
	return prev
}
