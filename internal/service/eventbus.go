package service

import (
	"sync"

	"github.com/avior/infuser/internal/domain"
)

// EventBus fans submission outcomes out to in-process subscribers.
type EventBus struct {
	subscribers []chan domain.Outcome
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (eb *EventBus) Subscribe() chan domain.Outcome {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan domain.Outcome, 16)
	eb.subscribers = append(eb.subscribers, ch)
	return ch
}

func (eb *EventBus) Unsubscribe(ch chan domain.Outcome) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, sub := range eb.subscribers {
		if sub == ch {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

func (eb *EventBus) Publish(out domain.Outcome) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers {
		select {
		case ch <- out:
		default:
			// slow subscriber, drop
		}
	}
}
