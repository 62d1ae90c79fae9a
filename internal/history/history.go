// Package history records the routes a session has visited, so the UI can
// offer "back" targets that survive a reload. Stored as a JSON array in the
// key-value store, one entry per navigation.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vincentputra/pos-app-new/internal/kvstore"
)

type Tracker struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Tracker {
	return &Tracker{store: store}
}

func key(sessionID string) string {
	return "routeHistory:" + sessionID
}

func (t *Tracker) routes(ctx context.Context, sessionID string) ([]string, error) {
	raw, err := t.store.Get(ctx, key(sessionID))
	if err != nil {
		return nil, fmt.Errorf("read route history: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var routes []string
	if err := json.Unmarshal([]byte(raw), &routes); err != nil {
		// Corrupted history is not worth surfacing; start over.
		return nil, nil
	}
	return routes, nil
}

func (t *Tracker) AddRoute(ctx context.Context, sessionID, route string) error {
	routes, err := t.routes(ctx, sessionID)
	if err != nil {
		return err
	}
	routes = append(routes, route)
	data, err := json.Marshal(routes)
	if err != nil {
		return fmt.Errorf("encode route history: %w", err)
	}
	return t.store.Set(ctx, key(sessionID), string(data))
}

// PreviousRoute returns the route stepsBack entries from the end, or "/"
// when the history is too short.
func (t *Tracker) PreviousRoute(ctx context.Context, sessionID string, stepsBack int) (string, error) {
	routes, err := t.routes(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if len(routes) > stepsBack {
		return routes[len(routes)-1-stepsBack], nil
	}
	return "/", nil
}

func (t *Tracker) Clear(ctx context.Context, sessionID string) error {
	return t.store.Remove(ctx, key(sessionID))
}
