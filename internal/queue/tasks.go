package queue

import (
	"encoding/json"

	"github.com/parceldesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch 通知分发任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
	// TaskTrackerRegister 运单注册任务
	TaskTrackerRegister = constants.TaskTrackerRegister
)

// NotificationDispatchPayload 通知分发任务载荷
type NotificationDispatchPayload struct {
	Message string `json:"message"`
}

// TrackerRegisterPayload 运单注册任务载荷
type TrackerRegisterPayload struct {
	ShipmentID uint `json:"shipment_id"`
}

// NewNotificationDispatchTask 创建通知分发任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}

// NewTrackerRegisterTask 创建运单注册任务
func NewTrackerRegisterTask(payload TrackerRegisterPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTrackerRegister, body), nil
}
