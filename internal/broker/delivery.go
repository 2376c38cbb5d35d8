package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

const DocumentLocatedType = "document.located"

// DocumentDelivery announces a located document to downstream subscribers.
type DocumentDelivery struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	OccurredAt  time.Time       `json:"occurredAt"`
	AccountID   string          `json:"conta"`
	CompanyID   string          `json:"empresaId"`
	CompanyName string          `json:"empresa"`
	Document    models.Document `json:"documento"`
}

type publisher interface {
	Publish(ctx context.Context, m Message) error
}

// DeliveryDispatcher serializes deliveries and hands them to the queue.
type DeliveryDispatcher struct {
	pub publisher
	now func() time.Time
	log *slog.Logger
}

func NewDeliveryDispatcher(pub publisher, log *slog.Logger) *DeliveryDispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &DeliveryDispatcher{pub: pub, now: time.Now, log: log.With("cmp", "broker.delivery")}
}

func (d *DeliveryDispatcher) DispatchDocument(ctx context.Context, company models.Company, doc models.Document) error {
	ev := DocumentDelivery{
		ID:          uuid.NewString(),
		Type:        DocumentLocatedType,
		OccurredAt:  d.now().UTC(),
		AccountID:   company.AccountID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Document:    doc,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal delivery: %w", err)
	}
	err = d.pub.Publish(ctx, Message{
		ID:      ev.ID,
		Type:    ev.Type,
		Body:    body,
		Headers: amqp.Table{"conta": company.AccountID, "empresaId": company.ID},
	})
	if err != nil {
		return fmt.Errorf("publish delivery %s: %w", ev.ID, err)
	}
	d.log.Info("delivery_published", "id", ev.ID, "account", company.AccountID, "document_id", doc.ID)
	return nil
}

// NoopDispatcher is used when no broker is configured.
type NoopDispatcher struct {
	Log *slog.Logger
}

func (n NoopDispatcher) DispatchDocument(_ context.Context, company models.Company, doc models.Document) error {
	if n.Log != nil {
		n.Log.Debug("delivery_skipped", "account", company.AccountID, "document_id", doc.ID)
	}
	return nil
}
