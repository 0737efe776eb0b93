package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeMeetingExpire   = "meeting:expire"
	TypeBookingReminder = "booking:reminder"
)

// BookingTaskPayload is shared by both delayed booking tasks.
type BookingTaskPayload struct {
	BookingID string `json:"bookingId"`
}

func NewMeetingExpiryTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(BookingTaskPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeMeetingExpire, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}

func NewReminderTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(BookingTaskPayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeBookingReminder, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}

// AsynqScheduler enqueues delayed booking tasks on the job queue.
type AsynqScheduler struct {
	Client *asynq.Client
}

func NewAsynqScheduler(client *asynq.Client) *AsynqScheduler {
	return &AsynqScheduler{Client: client}
}

func (s *AsynqScheduler) ScheduleMeetingExpiry(bookingID string, at time.Time) error {
	task, opts, err := NewMeetingExpiryTask(bookingID, at)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}

func (s *AsynqScheduler) ScheduleReminder(bookingID string, at time.Time) error {
	task, opts, err := NewReminderTask(bookingID, at)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
