package tasks

import (
	"encoding/json"

	"blend-calendar-api/core/config"
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// InvitationNotifyPayload is the payload for invitation notification tasks,
// enqueued by the event create workflow and processed by the worker.
type InvitationNotifyPayload struct {
	InvitationID uuid.UUID `json:"invitation_id"`
	InviteeID    uuid.UUID `json:"invitee_id"`
	EventTitle   string    `json:"event_title"`
}

// NewClient builds an asynq client backed by the configured redis instance.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewServer builds the asynq worker server. Handlers are registered by the
// notification module during server bootstrap.
func NewServer(cfg config.RedisConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
}

// NewInvitationNotifyTask wraps the payload into an asynq task.
func NewInvitationNotifyTask(payload InvitationNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskTypeInvitationNotify, data), nil
}

// Enqueue submits a task, logging failures without surfacing them to the
// request path. Notification delivery must never fail event creation.
func Enqueue(client *asynq.Client, task *asynq.Task) {
	if client == nil {
		return
	}
	info, err := client.Enqueue(task)
	if err != nil {
		logger.Error("Tasks:Enqueue", "error", err, "type", task.Type())
		return
	}
	logger.Info("Tasks:Enqueue:Success", "type", task.Type(), "task_id", info.ID)
}
