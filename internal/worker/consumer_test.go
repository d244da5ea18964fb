package worker

import (
	"context"
	"testing"

	"github.com/parceldesk/internal/provider"
	"github.com/parceldesk/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleNotificationDispatchMalformedPayload(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskNotificationDispatch, []byte("{not json"))
	if err := c.handleNotificationDispatch(context.Background(), task); err == nil {
		t.Fatalf("malformed payload should return error for retry visibility")
	}
}

func TestHandleNotificationDispatchEmptyMessageSkipped(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskNotificationDispatch, []byte(`{"message":""}`))
	if err := c.handleNotificationDispatch(context.Background(), task); err != nil {
		t.Fatalf("empty message should be skipped without error, got %v", err)
	}
}

func TestHandleTrackerRegisterZeroIDSkipped(t *testing.T) {
	c := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskTrackerRegister, []byte(`{"shipment_id":0}`))
	if err := c.handleTrackerRegister(context.Background(), task); err != nil {
		t.Fatalf("zero shipment id should be skipped without error, got %v", err)
	}
}

func TestHandleTrackerRegisterNilTask(t *testing.T) {
	c := NewConsumer(nil)
	if err := c.handleTrackerRegister(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped without error, got %v", err)
	}
}
