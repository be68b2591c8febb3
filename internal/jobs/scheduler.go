// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежечасная очистка
// просроченных вложений.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"anontalk.ru/admin-backend/internal/features/attachments"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron               *cron.Cron
	attachmentsService *attachments.Service
}

// NewScheduler создаёт планировщик задач в часовом поясе из конфига.
func NewScheduler(timezone string, attachmentsService *attachments.Service) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).Warnf("Не удалось загрузить %s, используем UTC+3", timezone)
		loc = time.FixedZone("MSK", 3*60*60)
	}

	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:               c,
		attachmentsService: attachmentsService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Очистка вложений старше суток — каждый час
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Очистка просроченных вложений")
		deleted, err := s.attachmentsService.CleanupExpired(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка очистки вложений")
			return
		}
		if deleted > 0 {
			log.Infof("[CRON] Удалено вложений: %d", deleted)
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
