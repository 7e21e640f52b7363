// Package notifications delivers short user-facing messages outside the main window.
package notifications

// Payload is a generic user-facing notification payload.
type Payload struct {
	Title   string
	Content string
}

func (p Payload) Empty() bool {
	return p.Title == "" && p.Content == ""
}

// Sender sends notifications using a platform-specific backend.
type Sender interface {
	Send(payload Payload)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Send(Payload) {}
