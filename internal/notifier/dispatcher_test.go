package notifier

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/integrations/notifyservice"
)

type fakeSender struct {
	smsCalls   int
	emailCalls int

	// smsErrs отдается по одной ошибке на попытку; исчерпание - успех
	smsErrs []error
}

func (f *fakeSender) SendEmail(ctx context.Context, payload *notifyservice.EmailPayload) error {
	f.emailCalls++
	return nil
}

func (f *fakeSender) SendSMS(ctx context.Context, payload *notifyservice.SMSPayload) error {
	f.smsCalls++
	if len(f.smsErrs) == 0 {
		return nil
	}
	err := f.smsErrs[0]
	f.smsErrs = f.smsErrs[1:]
	return err
}

type fakeAudit struct {
	records []*domain.NotificationRecord
}

func (f *fakeAudit) Append(ctx context.Context, rec *domain.NotificationRecord) error {
	f.records = append(f.records, rec)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newTestDispatcher(sender *fakeSender, audit *fakeAudit) *Dispatcher {
	d := NewDispatcher(sender, audit, nil, nopLogger{}, 16, 2)
	d.retryBackoff = time.Millisecond
	return d
}

func smsTask() Task {
	return Task{
		BookingID: 1,
		Template:  TemplateBookingConfirmed,
		Phone:     "+79990001122",
		Params:    map[string]string{"reference": "FTV-20251201-AAAA1111"},
	}
}

func TestSendSMS_TransientFailureIsRetried(t *testing.T) {
	sender := &fakeSender{smsErrs: []error{
		fmt.Errorf("%w: connection reset", notifyservice.ErrInternal),
		fmt.Errorf("%w: status code 502", notifyservice.ErrInvalidResponse),
	}}
	audit := &fakeAudit{}
	d := newTestDispatcher(sender, audit)

	d.sendSMS(smsTask())

	assert.Equal(t, 3, sender.smsCalls)

	// Каждая попытка оставляет след в журнале, последняя - успешная
	require.Len(t, audit.records, 3)
	assert.False(t, audit.records[0].Delivered)
	assert.False(t, audit.records[1].Delivered)
	assert.True(t, audit.records[2].Delivered)
}

func TestSendSMS_PermanentRejectionIsNotRetried(t *testing.T) {
	sender := &fakeSender{smsErrs: []error{
		fmt.Errorf("%w: status code 400: unknown template", notifyservice.ErrRejected),
	}}
	audit := &fakeAudit{}
	d := newTestDispatcher(sender, audit)

	d.sendSMS(smsTask())

	assert.Equal(t, 1, sender.smsCalls)
	require.Len(t, audit.records, 1)
	assert.False(t, audit.records[0].Delivered)
}

func TestSendSMS_DeliveryFailureIsNotRetried(t *testing.T) {
	sender := &fakeSender{smsErrs: []error{
		fmt.Errorf("%w: invalid phone number", notifyservice.ErrDeliveryFailed),
	}}
	d := newTestDispatcher(sender, &fakeAudit{})

	d.sendSMS(smsTask())

	assert.Equal(t, 1, sender.smsCalls)
}

func TestSendSMS_RetriesAreBounded(t *testing.T) {
	transient := errors.New("gateway timeout")
	sender := &fakeSender{smsErrs: []error{transient, transient, transient, transient}}
	audit := &fakeAudit{}
	d := newTestDispatcher(sender, audit)

	d.sendSMS(smsTask())

	// Первая попытка + smsMaxRetries повторов
	assert.Equal(t, 3, sender.smsCalls)
	for _, rec := range audit.records {
		assert.False(t, rec.Delivered)
	}
}

func TestProcess_SkipsChannelsWithoutRecipient(t *testing.T) {
	sender := &fakeSender{}
	d := newTestDispatcher(sender, &fakeAudit{})

	task := smsTask()
	task.Phone = ""
	task.Email = "anna@example.com"
	d.process(task)

	assert.Equal(t, 1, sender.emailCalls)
	assert.Equal(t, 0, sender.smsCalls)
}
