package domain

import (
	"context"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/connectors"
)

// WriteQueue serializes persistence writes from async domain events.
type WriteQueue interface {
	Enqueue(name string, fn func(context.Context) error)
}

// StartPersistenceProjection records every published indicator state and keeps
// at most historyLimit rows. It returns once subscribed; work continues until ctx ends.
func StartPersistenceProjection(ctx context.Context, b bus.MessageBus, queue WriteQueue, repo StateRepository, historyLimit int) {
	stateSub := b.Subscribe(connectors.TopicIndicatorState)

	go func() {
		defer b.Unsubscribe(stateSub, connectors.TopicIndicatorState)
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-stateSub:
				if !ok {
					return
				}
				state, ok := raw.(IndicatorState)
				if !ok {
					continue
				}
				queue.Enqueue("insert_indicator_state", func(writeCtx context.Context) error {
					if _, err := repo.Insert(writeCtx, state); err != nil {
						return err
					}
					if historyLimit <= 0 {
						return nil
					}
					_, err := repo.Prune(writeCtx, historyLimit)

					return err
				})
			}
		}
	}()
}
