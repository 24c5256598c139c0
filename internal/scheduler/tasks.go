package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskHandoffNotify = "handoff.notify"

type HandoffNotifyPayload struct {
	HandoffID string `json:"handoffId"`
}

func NewHandoffNotifyTask(payload HandoffNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHandoffNotify, data), nil
}

func ParseHandoffNotifyPayload(task *asynq.Task) (HandoffNotifyPayload, error) {
	var payload HandoffNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return HandoffNotifyPayload{}, err
	}
	return payload, nil
}
