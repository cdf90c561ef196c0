package services

import (
	"context"
	"encoding/json"
	"fmt"

	"menux/db"
)

const (
	ChannelDeepLink = "deep_link"
	ChannelTelegram = "telegram"
)

// SaveOrderMessage records a composed order for the restaurant. Best effort:
// callers log the error and move on.
func SaveOrderMessage(ctx context.Context, restaurantID, sessionID, channel, recipient, content string, meta map[string]interface{}) error {
	if db.Pool == nil {
		return nil
	}
	metaJSON := "{}"
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal meta: %w", err)
		}
		metaJSON = string(b)
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO order_messages (restaurant_id, session_id, channel, recipient, content, meta)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)`,
		restaurantID, sessionID, channel, recipient, content, metaJSON,
	)
	return err
}

// CountOrderMessages returns how many orders a session has sent on a channel.
func CountOrderMessages(ctx context.Context, sessionID, channel string) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM order_messages WHERE session_id = $1 AND channel = $2`,
		sessionID, channel,
	).Scan(&n)
	return n, err
}
