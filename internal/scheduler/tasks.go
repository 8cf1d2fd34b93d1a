package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskSummaryRefresh recomputes and caches the summary of one base.
const TaskSummaryRefresh = "dashboard.summary.refresh"

// TaskSummaryRefreshAll fans out one TaskSummaryRefresh per known base.
const TaskSummaryRefreshAll = "dashboard.summary.refresh_all"

// SummaryRefreshPayload names the base to refresh. Empty means all bases combined.
type SummaryRefreshPayload struct {
	Base string `json:"base"`
}

func NewSummaryRefreshTask(payload SummaryRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSummaryRefresh, data), nil
}

func ParseSummaryRefreshPayload(task *asynq.Task) (SummaryRefreshPayload, error) {
	var payload SummaryRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SummaryRefreshPayload{}, err
	}
	return payload, nil
}

func NewSummaryRefreshAllTask() *asynq.Task {
	return asynq.NewTask(TaskSummaryRefreshAll, nil)
}
