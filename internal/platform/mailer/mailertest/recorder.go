// Package mailertest provides an in-memory mailer.Sender for tests.
package mailertest

import (
	"context"
	"sync"

	"github.com/fatflowers/letterpay/internal/platform/mailer"
)

// Message is one recorded Send call.
type Message struct {
	To         string
	TemplateID string
	Args       map[string]any
}

// Recorder records every message. Fail decides the outcome per message; nil
// means every send succeeds. A send whose ctx is already done fails.
type Recorder struct {
	Fail func(m Message) bool
	// Block makes Send wait for ctx to be done, simulating a hung server.
	Block func(m Message) bool

	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Send(ctx context.Context, to string, templateID string, args map[string]any) mailer.SendResult {
	m := Message{To: to, TemplateID: templateID, Args: args}
	r.mu.Lock()
	r.messages = append(r.messages, m)
	r.mu.Unlock()

	if r.Block != nil && r.Block(m) {
		<-ctx.Done()
	}
	if err := ctx.Err(); err != nil {
		return mailer.Failed(err)
	}
	if r.Fail != nil && r.Fail(m) {
		return mailer.SendResult{Success: false, Error: "mailbox unavailable"}
	}
	return mailer.SendResult{Success: true}
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

var _ mailer.Sender = (*Recorder)(nil)
