package application

import "context"

type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Composer turns the finished message into the outbound hand-off URL.
type Composer interface {
	Compose(message string) string
}
