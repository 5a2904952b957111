package state

import (
	"time"

	"github.com/julianstephens/focusflow/internal/models"
)

// TopicRevised is emitted when a topic's status is set to Revised. Handlers
// run inside the same mutation, before subscribers are notified.
type TopicRevised struct {
	Topic models.TopicStatus
	At    time.Time
}

// TopicRevisedHandler reacts to a TopicRevised event by mutating through tx
type TopicRevisedHandler func(tx *Tx, e TopicRevised)

// OnTopicRevised registers h. Handlers run in registration order.
func (s *Store) OnTopicRevised(h TopicRevisedHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topicRevised = append(s.topicRevised, h)
}

func (s *Store) dispatchEvents(tx *Tx) {
	for i := 0; i < len(tx.events); i++ {
		switch e := tx.events[i].(type) {
		case TopicRevised:
			for _, h := range s.topicRevised {
				h(tx, e)
			}
		}
	}
}
