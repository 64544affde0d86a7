package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastice-lab/storefront/internal/contact/domain"
	"github.com/mastice-lab/storefront/pkg/events"
	"github.com/mastice-lab/storefront/pkg/logger"
)

type recorder struct {
	got []events.Event
	err error
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.got = append(r.got, ev)
	return r.err
}

func inquiry() domain.Message {
	return domain.Message{
		Name:    "김커피",
		Email:   "coffee@example.com",
		Subject: "class",
		Message: "원데이 클래스 일정이 궁금합니다.",
	}
}

func TestSubmit(t *testing.T) {
	rec := &recorder{}
	svc := NewService(rec, logger.Discard())
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	msg, err := svc.Submit(context.Background(), inquiry())
	require.NoError(t, err)
	assert.Regexp(t, `^CT-[0-9a-f-]{36}$`, msg.TicketID)
	assert.Equal(t, at, msg.ReceivedAt)

	require.Len(t, rec.got, 1)
	assert.Equal(t, EventContactReceived, rec.got[0].Type)
	assert.Equal(t, msg.TicketID, rec.got[0].AggregateID)
	assert.Equal(t, ReceivedPayload{TicketID: msg.TicketID, Subject: "class", ReceivedAt: at}, rec.got[0].Payload)
}

func TestSubmitEventCarriesNoContactDetails(t *testing.T) {
	rec := &recorder{}
	svc := NewService(rec, logger.Discard())

	in := inquiry()
	in.Phone = "010-1234-5678"
	_, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, rec.got, 1)

	raw, err := json.Marshal(rec.got[0].Payload)
	require.NoError(t, err)
	for _, secret := range []string{in.Name, in.Email, in.Phone, in.Message} {
		assert.NotContains(t, string(raw), secret)
	}
	assert.Contains(t, string(raw), `"subject":"class"`)
}

func TestSubmitValidation(t *testing.T) {
	rec := &recorder{}
	svc := NewService(rec, logger.Discard())

	_, err := svc.Submit(context.Background(), domain.Message{Email: "nope", Subject: "refund"})
	var ferr *domain.InvalidFieldsError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, []string{"name", "email", "subject", "message"}, ferr.Fields)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, rec.got)
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	svc := NewService(&recorder{err: errors.New("broker down")}, logger.Discard())

	msg, err := svc.Submit(context.Background(), inquiry())
	require.NoError(t, err)
	assert.NotEmpty(t, msg.TicketID)
}
