package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskGenerateSpreadsheet = "exports.spreadsheet.generate"

// GenerateSpreadsheetPayload identifies the export job to generate. The job
// row carries the remaining parameters.
type GenerateSpreadsheetPayload struct {
	JobID string `json:"jobId"`
}

func NewGenerateSpreadsheetTask(payload GenerateSpreadsheetPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGenerateSpreadsheet, data), nil
}

func ParseGenerateSpreadsheetPayload(task *asynq.Task) (GenerateSpreadsheetPayload, error) {
	var payload GenerateSpreadsheetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GenerateSpreadsheetPayload{}, err
	}
	return payload, nil
}
