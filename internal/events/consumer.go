package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/gometeo/weatherform/internal/model"
)

// AuditHandler is a sarama consumer group handler that writes one log line
// per lookup event. Broken messages are logged and skipped.
type AuditHandler struct {
	logger *slog.Logger
}

func NewAuditHandler(logger *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.With("component", "audit_handler")}
}

func (h *AuditHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *AuditHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *AuditHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		// Битые сообщения тоже помечаем: повторное чтение их не исправит.
		h.Handle(msg)
		sess.MarkMessage(msg, "")
	}
	return nil
}

// Handle logs a single message and returns the decoded event.
func (h *AuditHandler) Handle(msg *sarama.ConsumerMessage) (model.LookupEvent, error) {
	event, err := DecodeEvent(msg.Value)
	if err != nil {
		h.logger.Error("Битое событие",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		return model.LookupEvent{}, err
	}

	attrs := []any{
		"id", event.ID,
		"country", event.CountryCode,
		"city", event.City,
		"outcome", event.Outcome,
		"at", event.Timestamp,
	}
	if event.Theme != "" {
		attrs = append(attrs, "theme", string(event.Theme))
	}
	if event.Temperature != nil {
		attrs = append(attrs, "temperature", *event.Temperature)
	}

	h.logger.Info("Запрос погоды", attrs...)
	return event, nil
}

func DecodeEvent(data []byte) (model.LookupEvent, error) {
	var event model.LookupEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return model.LookupEvent{}, fmt.Errorf("ошибка десериализации: %w", err)
	}
	if event.ID == "" {
		return model.LookupEvent{}, errors.New("событие без id")
	}
	return event, nil
}
