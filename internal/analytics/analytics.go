// Package analytics carries the storefront's event hooks. Events follow the
// page's tracker shape: category, action, label. Emission is fire-and-forget;
// an adapter that cannot deliver logs and moves on.
package analytics

import "context"

type Event struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Label    string `json:"label"`
}

type Tracker interface {
	Track(ctx context.Context, ev Event)
}

// Noop is the default tracker when no broker is configured.
type Noop struct{}

func (Noop) Track(context.Context, Event) {}
