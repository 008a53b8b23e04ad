// Package events публикует события жизненного цикла бронирований в Kafka
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/civiltime"
)

// Типы событий
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCompleted = "booking.completed"
	TypeBookingCancelled = "booking.cancelled"
)

// TypeForStatus возвращает тип события для нового статуса бронирования
func TypeForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return TypeBookingConfirmed
	case domain.StatusCompleted:
		return TypeBookingCompleted
	case domain.StatusCancelled:
		return TypeBookingCancelled
	default:
		return TypeBookingCreated
	}
}

// BookingEvent тело сообщения
type BookingEvent struct {
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	OccurredAt     time.Time `json:"occurredAt"`
	BookingID      int64     `json:"bookingId"`
	CustomerID     int64     `json:"customerId"`
	UnitID         int64     `json:"unitId"`
	ProfessionalID int64     `json:"professionalId"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Status         string    `json:"status"`
	ServiceIDs     []int64   `json:"serviceIds"`
	TotalPrice     float64   `json:"totalPrice"`
}

// MessageWriter интерфейс kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события в один топик, ключ сообщения - ID мастера
type Publisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

// NewKafkaPublisher создает publisher поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewPublisher(writer, topic)
}

// NewPublisher создает publisher с произвольным writer
func NewPublisher(writer MessageWriter, topic string) *Publisher {
	return &Publisher{writer: writer, topic: topic, now: time.Now}
}

// PublishBookingEvent публикует событие по бронированию
func (p *Publisher) PublishBookingEvent(ctx context.Context, eventType string, booking *domain.Booking) error {
	event := BookingEvent{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		OccurredAt:     p.now().UTC(),
		BookingID:      booking.ID,
		CustomerID:     booking.CustomerID,
		UnitID:         booking.UnitID,
		ProfessionalID: booking.ProfessionalID,
		Date:           civiltime.FormatDate(booking.BookingDate),
		StartTime:      booking.StartTime.String(),
		EndTime:        booking.EndTime.String(),
		Status:         string(booking.Status),
		ServiceIDs:     booking.ServiceIDs,
		TotalPrice:     booking.TotalPrice,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(booking.ProfessionalID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", eventType, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда брокеры не настроены
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingEvent(context.Context, string, *domain.Booking) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
