package kitchen

import (
	"context"
	"encoding/json"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/domain"
)

// Subscribe consumes order events and converts each into a poller trigger.
// The board never trusts event payloads as state; an event only means "poll
// now instead of waiting for the next tick".
func Subscribe(ctx context.Context, mqc *mq.Client, trigger chan<- struct{}, lg *logger.Logger) error {
	deliveries, err := mqc.SubscribeEvents("kitchen-board")
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					lg.Warn("event_stream_closed", nil)
					return
				}
				var ev domain.OrderEvent
				if err := json.Unmarshal(d.Body, &ev); err != nil {
					lg.Debug("event_discarded", map[string]any{"err": err.Error()})
					continue
				}
				select {
				case trigger <- struct{}{}:
				default: // a refresh is already queued
				}
				lg.Debug("refresh_triggered", map[string]any{"order_id": ev.OrderID, "status": ev.Status})
			}
		}
	}()
	return nil
}
