package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/FTV-BookingService/internal/domain"
	"github.com/m04kA/FTV-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/FTV-BookingService/pkg/ptr"
)

// Шаблоны уведомлений, рендерятся на стороне шлюза
const (
	TemplateBookingConfirmed   = "booking_confirmed"
	TemplateBookingRescheduled = "booking_rescheduled"
	TemplateBookingCancelled   = "booking_cancelled"
	TemplateSpecialPending     = "special_pending"
	TemplateSpecialApproved    = "special_approved"
	TemplateSpecialRejected    = "special_rejected"
)

// sendTimeout таймаут одной попытки отправки
const sendTimeout = 10 * time.Second

// smsRetryBackoff базовая пауза между повторами SMS
const smsRetryBackoff = 2 * time.Second

// Task задание на отправку уведомлений по одному бронированию
// Email отправляется при непустом Email, SMS - при непустом Phone
type Task struct {
	BookingID int64
	Template  string
	Email     string
	Phone     string
	Params    map[string]string
}

// Sender интерфейс шлюза уведомлений
type Sender interface {
	SendEmail(ctx context.Context, payload *notifyservice.EmailPayload) error
	SendSMS(ctx context.Context, payload *notifyservice.SMSPayload) error
}

// AuditLog интерфейс журнала попыток отправки
type AuditLog interface {
	Append(ctx context.Context, rec *domain.NotificationRecord) error
}

// Metrics интерфейс метрик уведомлений
type Metrics interface {
	ObserveNotification(channel string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher фоновый диспетчер уведомлений
//
// Отправка полностью отвязана от пути запроса: usecase кладет задание
// в очередь после фиксации транзакции, ошибки доставки никогда не
// откатывают бронирование и не видны вызывающему - только в журнале
// и логах
type Dispatcher struct {
	tasks         chan Task
	sender        Sender
	audit         AuditLog
	metrics       Metrics // может быть nil, если метрики выключены
	log           Logger
	smsMaxRetries int
	retryBackoff  time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher создает диспетчер с очередью указанного размера
func NewDispatcher(sender Sender, audit AuditLog, metrics Metrics, log Logger, queueSize int, smsMaxRetries int) *Dispatcher {
	return &Dispatcher{
		tasks:         make(chan Task, queueSize),
		sender:        sender,
		audit:         audit,
		metrics:       metrics,
		log:           log,
		smsMaxRetries: smsMaxRetries,
		retryBackoff:  smsRetryBackoff,
	}
}

// Start запускает воркер обработки очереди
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for task := range d.tasks {
			d.process(task)
		}
	}()
}

// Stop закрывает очередь и дожидается отправки оставшихся заданий
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.tasks)
	})
	d.wg.Wait()
}

// Enqueue ставит задание в очередь, не блокируя вызывающего
// При переполненной очереди задание отбрасывается с записью в лог:
// уведомления best-effort, бронирование уже зафиксировано
func (d *Dispatcher) Enqueue(task Task) {
	select {
	case d.tasks <- task:
	default:
		d.log.Error("Notifier: queue is full, dropping %s notification for booking id=%d",
			task.Template, task.BookingID)
	}
}

func (d *Dispatcher) process(task Task) {
	if task.Email != "" {
		d.sendEmail(task)
	}
	if task.Phone != "" {
		d.sendSMS(task)
	}
}

func (d *Dispatcher) sendEmail(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err := d.sender.SendEmail(ctx, &notifyservice.EmailPayload{
		To:       task.Email,
		Template: task.Template,
		Params:   task.Params,
	})

	d.record(task, domain.ChannelEmail, task.Email, err)

	if err != nil {
		d.log.Error("Notifier: email %s failed for booking id=%d: %v", task.Template, task.BookingID, err)
		return
	}
	d.log.Info("Notifier: email %s sent for booking id=%d", task.Template, task.BookingID)
}

// sendSMS отправляет SMS с ограниченным числом повторов
// Повторяются только транзиентные сбои шлюза; окончательный отказ
// (отклоненный запрос, недоставляемый номер) фиксируется с первой попытки
func (d *Dispatcher) sendSMS(task Task) {
	var err error
	for attempt := 0; attempt <= d.smsMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * d.retryBackoff)
			d.log.Warn("Notifier: retrying sms %s for booking id=%d, attempt %d",
				task.Template, task.BookingID, attempt+1)
		}

		err = d.trySMS(task)
		d.record(task, domain.ChannelSMS, task.Phone, err)

		if err == nil {
			d.log.Info("Notifier: sms %s sent for booking id=%d", task.Template, task.BookingID)
			return
		}

		if isPermanentSendFailure(err) {
			d.log.Error("Notifier: sms %s permanently rejected for booking id=%d: %v",
				task.Template, task.BookingID, err)
			return
		}
	}

	d.log.Error("Notifier: sms %s failed for booking id=%d after %d attempts: %v",
		task.Template, task.BookingID, d.smsMaxRetries+1, err)
}

// isPermanentSendFailure отличает окончательный отказ шлюза от
// транзиентного сбоя сети или самого шлюза
func isPermanentSendFailure(err error) bool {
	return errors.Is(err, notifyservice.ErrRejected) || errors.Is(err, notifyservice.ErrDeliveryFailed)
}

func (d *Dispatcher) trySMS(task Task) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	return d.sender.SendSMS(ctx, &notifyservice.SMSPayload{
		Phone:    task.Phone,
		Template: task.Template,
		Params:   task.Params,
	})
}

// record пишет попытку в журнал аудита; сбой журнала только логируется
func (d *Dispatcher) record(task Task, channel domain.NotificationChannel, recipient string, sendErr error) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(string(channel), sendErr)
	}

	rec := &domain.NotificationRecord{
		BookingID: task.BookingID,
		Channel:   channel,
		Template:  task.Template,
		Recipient: recipient,
		Delivered: sendErr == nil,
	}
	if sendErr != nil {
		rec.Detail = ptr.Ptr(sendErr.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.audit.Append(ctx, rec); err != nil {
		d.log.Error("Notifier: failed to append audit record for booking id=%d: %v", task.BookingID, err)
	}
}
