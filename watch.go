package smsaero

import (
	"context"
	"time"
)

// DefaultWatchInterval is used by WaitForStatus when no interval is
// given.
const DefaultWatchInterval = 5 * time.Second

// terminal reports whether a message has reached a state that will not
// change anymore. Rejection by moderation is final too.
func terminal(status int) bool {
	switch status {
	case StatusDelivered, StatusNotDelivered, StatusRejected:
		return true
	}
	return false
}

// WaitForStatus polls SMSStatus on a ticker until the message reaches
// a terminal state or the context ends. The status is checked once
// immediately before the first tick.
func (c *Client) WaitForStatus(ctx context.Context, id int64, interval time.Duration) (*Message, error) {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	msg, err := c.SMSStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	if terminal(msg.Status) {
		return msg, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			msg, err := c.SMSStatus(ctx, id)
			if err != nil {
				return nil, err
			}
			if terminal(msg.Status) {
				return msg, nil
			}
			c.log.WithField("id", id).WithField("status", msg.ExtendStatus).Debug("message not terminal yet")
		}
	}
}
