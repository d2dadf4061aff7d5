package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadAlert = "leads.alert"

type LeadAlertPayload struct {
	LeadID string `json:"leadId"`
}

func NewLeadAlertTask(payload LeadAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadAlert, data), nil
}

func ParseLeadAlertPayload(task *asynq.Task) (LeadAlertPayload, error) {
	var payload LeadAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadAlertPayload{}, err
	}
	return payload, nil
}
