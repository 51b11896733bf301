package natsadapter

import (
	"context"
	"encoding/json"
	"time"

	nats "github.com/nats-io/nats.go"
)

// EventPublisher emits fire-and-forget notifications about account and
// upload activity. Callers ignore publish errors.
type EventPublisher interface {
	UserCreated(ctx context.Context, userID, email string) error
	AudioUploaded(ctx context.Context, fileID, ownerID, filename string) error
}

type Subjects struct {
	UserCreated   string
	AudioUploaded string
}

type eventPublisher struct {
	conn     *nats.Conn
	subjects Subjects
}

func NewEventPublisher(conn *nats.Conn, subjects Subjects) EventPublisher {
	return &eventPublisher{conn: conn, subjects: subjects}
}

func (p *eventPublisher) UserCreated(ctx context.Context, userID, email string) error {
	payload := map[string]interface{}{"id": userID, "email": email, "at": time.Now().UTC()}
	return p.publish(p.subjects.UserCreated, payload)
}

func (p *eventPublisher) AudioUploaded(ctx context.Context, fileID, ownerID, filename string) error {
	payload := map[string]interface{}{"id": fileID, "owner_id": ownerID, "filename": filename, "at": time.Now().UTC()}
	return p.publish(p.subjects.AudioUploaded, payload)
}

func (p *eventPublisher) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}
