// Package push delivers real-time notification events to connected
// clients over Pusher channels. Delivery is best effort: a failed
// trigger is logged and never surfaces to the caller.
package push

import (
	"log/slog"

	"github.com/pusher/pusher-http-go/v5"

	"github.com/klypp-app/klypp-backend/internal/config"
)

// Dispatcher publishes notification events for a user. The zero-config
// (disabled) dispatcher drops everything silently.
type Dispatcher struct {
	client  *pusher.Client
	enabled bool
}

func NewDispatcher(cfg *config.Config) *Dispatcher {
	if cfg.PusherAppID == "" || cfg.PusherKey == "" || cfg.PusherSecret == "" {
		slog.Info("push dispatch disabled: pusher credentials not configured")
		return &Dispatcher{}
	}
	return &Dispatcher{
		client: &pusher.Client{
			AppID:   cfg.PusherAppID,
			Key:     cfg.PusherKey,
			Secret:  cfg.PusherSecret,
			Cluster: cfg.PusherCluster,
		},
		enabled: true,
	}
}

// Notify publishes a "notification" event on the user's private channel.
// Called in a goroutine after the owning transaction commits; errors are
// logged and swallowed.
func (d *Dispatcher) Notify(userID string, payload map[string]interface{}) {
	if !d.enabled {
		return
	}
	if err := d.client.Trigger("private-user-"+userID, "notification", payload); err != nil {
		slog.Error("push dispatch failed", "user_id", userID, "error", err)
	}
}
