package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"rentwheels/config"
	"rentwheels/models"
	"rentwheels/utils"
)

const TypePickupReminder = "reminder:pickup"

// Notifier delivers pickup reminders. Actual delivery (push/email) is owned
// by the surrounding application; the default implementation only logs.
type Notifier interface {
	NotifyPickupReminder(ctx context.Context, p models.PickupReminderPayload) error
}

// LogNotifier is the in-repo Notifier used until a real channel is wired.
type LogNotifier struct{}

func (LogNotifier) NotifyPickupReminder(_ context.Context, p models.PickupReminderPayload) error {
	utils.GetLogger().Info("pickup reminder due",
		zap.String("reservationID", p.ReservationID),
		zap.String("vehicleID", p.VehicleID),
		zap.String("pickupDate", p.PickupDate))
	return nil
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifier Notifier) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePickupReminder, handlePickupReminder(notifier))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("reminder worker gave up")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handlePickupReminder(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PickupReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}
		return notifier.NotifyPickupReminder(ctx, p)
	}
}

// AsynqReminderScheduler enqueues pickup reminders when reservations are
// confirmed. Implements the booking engine's ReminderScheduler.
type AsynqReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

func NewReminderScheduler(lead time.Duration) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(redisOpts()),
		lead:   lead,
	}
}

func (s *AsynqReminderScheduler) SchedulePickupReminder(ctx context.Context, res *models.Reservation) error {
	fireAt := res.Start.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		// Too close to pickup for a reminder to be useful.
		return nil
	}

	payload, err := json.Marshal(models.PickupReminderPayload{
		ReservationID: res.ID,
		VehicleID:     res.VehicleID,
		PickupDate:    res.Start.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypePickupReminder, payload)
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}
