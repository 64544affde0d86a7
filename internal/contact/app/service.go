package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mastice-lab/storefront/internal/contact/domain"
	"github.com/mastice-lab/storefront/pkg/events"
)

const EventContactReceived = "ContactReceived"

// ReceivedPayload is what leaves the process for an inquiry. Contact
// details and the message body stay out of the event stream.
type ReceivedPayload struct {
	TicketID   string    `json:"ticketId"`
	Subject    string    `json:"subject"`
	ReceivedAt time.Time `json:"receivedAt"`
}

type Service struct {
	pub events.Publisher
	log *slog.Logger
	now func() time.Time
}

func NewService(pub events.Publisher, log *slog.Logger) *Service {
	return &Service{pub: pub, log: log, now: time.Now}
}

// Submit records an inquiry and returns its ticket id. Nothing is mailed;
// only the ticket id and subject leave the process, as a ContactReceived event.
func (s *Service) Submit(ctx context.Context, msg domain.Message) (domain.Message, error) {
	msg, err := msg.Validate()
	if err != nil {
		return domain.Message{}, err
	}

	msg.ReceivedAt = s.now().UTC()
	msg.TicketID = "CT-" + uuid.NewString()

	if err := s.pub.Publish(ctx, events.Event{
		Type:        EventContactReceived,
		AggregateID: msg.TicketID,
		Payload:     ReceivedPayload{TicketID: msg.TicketID, Subject: msg.Subject, ReceivedAt: msg.ReceivedAt},
		OccurredAt:  msg.ReceivedAt,
	}); err != nil {
		s.log.Warn("contact event not published", "ticket_id", msg.TicketID, "err", err)
	}

	s.log.Info("contact received", "ticket_id", msg.TicketID, "subject", msg.Subject)
	return msg, nil
}
