package queue

import (
	"encoding/json"

	"github.com/solemart/solemart/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderTimeoutCancel 超时取消任务
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
	// TaskOrderAutoComplete 发货超期自动签收任务
	TaskOrderAutoComplete = constants.TaskOrderAutoComplete
)

// OrderTimeoutCancelPayload 超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderAutoCompletePayload 自动签收任务载荷
type OrderAutoCompletePayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderTimeoutCancelTask 创建超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

// NewOrderAutoCompleteTask 创建自动签收任务
func NewOrderAutoCompleteTask(payload OrderAutoCompletePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAutoComplete, body), nil
}
