package ui

import (
	"fmt"
	"sync"

	"github.com/skobkin/signalbars/internal/bus"
	"github.com/skobkin/signalbars/internal/connectors"
	"github.com/skobkin/signalbars/internal/domain"
)

// startUIEventListeners forwards indicator states from the bus. The returned
// func unsubscribes and is safe to call more than once.
func startUIEventListeners(messageBus bus.MessageBus, onState func(domain.IndicatorState)) func() {
	if messageBus == nil {
		appLogger.Debug("skipping UI event listeners: message bus is nil")

		return func() {}
	}

	stateSub := messageBus.Subscribe(connectors.TopicIndicatorState)
	appLogger.Debug("subscribed to UI bus topics", "topics", []string{connectors.TopicIndicatorState})
	done := make(chan struct{})
	var stopOnce sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case raw, ok := <-stateSub:
				if !ok {
					appLogger.Debug("indicator state subscription closed")

					return
				}
				state, ok := raw.(domain.IndicatorState)
				if !ok {
					appLogger.Debug("ignoring unexpected indicator state payload", "payload_type", fmt.Sprintf("%T", raw))

					continue
				}
				select {
				case <-done:
					return
				default:
				}
				if onState != nil {
					onState(state)
				}
			}
		}
	}()

	return func() {
		stopOnce.Do(func() {
			close(done)
			messageBus.Unsubscribe(stateSub, connectors.TopicIndicatorState)
		})
	}
}
