// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежеминутное начисление дохода,
// ежеминутный мониторинг депозитов и ежечасный снимок цены RDX.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"rdxfarm.ru/backend/internal/features/rewards"
	"rdxfarm.ru/backend/internal/features/token"
	"rdxfarm.ru/backend/internal/features/wallet"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron    *cron.Cron
	rewards *rewards.Service
	wallet  *wallet.Service
	token   *token.Service

	// Защита от наложения тиков: долгий тик пропускает следующий запуск.
	accrualMu sync.Mutex
	monitorMu sync.Mutex
}

// NewScheduler создаёт планировщик задач. Все расписания в UTC:
// фоновые начисления не зависят от часового пояса пользователей.
func NewScheduler(rewardsSvc *rewards.Service, walletSvc *wallet.Service, tokenSvc *token.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		rewards: rewardsSvc,
		wallet:  walletSvc,
		token:   tokenSvc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Начисление дохода каждую минуту
	s.cron.AddFunc("* * * * *", func() {
		if !s.accrualMu.TryLock() {
			log.Warn("[CRON] Предыдущий тик начисления ещё идёт, пропускаем")
			return
		}
		defer s.accrualMu.Unlock()

		if err := s.rewards.RunAccrualTick(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка тика начисления")
		}
	})

	// Мониторинг депозитов каждую минуту
	s.cron.AddFunc("* * * * *", func() {
		if !s.monitorMu.TryLock() {
			log.Warn("[CRON] Предыдущая проверка депозитов ещё идёт, пропускаем")
			return
		}
		defer s.monitorMu.Unlock()

		if err := s.wallet.MonitorPendingDeposits(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка проверки депозитов")
		}
	})

	// Снимок цены RDX каждый час
	s.cron.AddFunc("0 * * * *", func() {
		log.Debug("[CRON] Снимок цены RDX")
		if err := s.token.SnapshotPrice(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка снимка цены")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (UTC)")
}

// Stop останавливает планировщик и дожидается завершения текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
