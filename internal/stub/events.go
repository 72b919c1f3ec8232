package stub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/FryoPie/Student-portal/internal/models"
)

const statusChangedTopic = "achievement.status_changed"

// StatusChangedEvent is published when a coordinator verifies or rejects an
// achievement. The notifier consumes it to create the student's
// notification, matching the production service's signal-driven behavior.
type StatusChangedEvent struct {
	AchievementID int64                    `json:"achievement_id"`
	StudentID     int64                    `json:"student_id"`
	Title         string                   `json:"title"`
	Status        models.AchievementStatus `json:"status"`
	Notes         string                   `json:"notes"`
}

// Notifier owns the in-process pub/sub channel between the verify handler
// and notification creation. Publishing blocks until the subscriber acks, so
// a verify response implies the notification exists.
type Notifier struct {
	pubsub *gochannel.GoChannel
	store  *Store
	logger *slog.Logger
	done   chan struct{}
}

func NewNotifier(store *Store, logger *slog.Logger) *Notifier {
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		BlockPublishUntilSubscriberAck: true,
	}, watermill.NewSlogLogger(logger))
	return &Notifier{
		pubsub: pubsub,
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Run subscribes and consumes status-change events until ctx is canceled.
// It must be running before any Publish.
func (n *Notifier) Run(ctx context.Context) error {
	msgs, err := n.pubsub.Subscribe(ctx, statusChangedTopic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", statusChangedTopic, err)
	}
	go func() {
		defer close(n.done)
		for msg := range msgs {
			n.handle(msg)
		}
	}()
	return nil
}

func (n *Notifier) handle(msg *message.Message) {
	defer msg.Ack()

	var ev StatusChangedEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		n.logger.Error("discarding malformed status event", "error", err)
		return
	}

	text := fmt.Sprintf(`Your achievement "%s" has been %s.`, ev.Title, ev.Status)
	if ev.Notes != "" {
		text += fmt.Sprintf(" Note: %s", ev.Notes)
	}
	n.store.CreateNotification(ev.StudentID, ev.AchievementID, ev.Title, text)
	n.logger.Debug("notification created", "achievement_id", ev.AchievementID, "student_id", ev.StudentID)
}

// Publish emits one status-change event.
func (n *Notifier) Publish(ev StatusChangedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}
	return n.pubsub.Publish(statusChangedTopic, message.NewMessage(watermill.NewUUID(), payload))
}

// Close shuts the channel down and waits for the consumer to drain.
func (n *Notifier) Close() error {
	err := n.pubsub.Close()
	<-n.done
	return err
}
