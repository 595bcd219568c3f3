// Package toast collects user-facing notices raised while handling a
// request. The core talks to an abstract notifier; the HTTP layer drains the
// recorder into the response and the page renders the messages as toasts.
package toast

import (
	"context"
	"sync"
)

type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Add(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *Recorder) Messages() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

type ctxKey struct{}

func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	r := &Recorder{}
	return context.WithValue(ctx, ctxKey{}, r), r
}

func FromContext(ctx context.Context) *Recorder {
	r, _ := ctx.Value(ctxKey{}).(*Recorder)
	return r
}

// ContextNotifier satisfies the notifier ports by writing into the request's
// recorder. Without a recorder in the context the notice is dropped.
type ContextNotifier struct{}

func (ContextNotifier) Notify(ctx context.Context, message string) {
	if r := FromContext(ctx); r != nil {
		r.Add(message)
	}
}
