package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	cleanup *CleanupService
	log     *zap.Logger
	stopCh  chan struct{}
}

func NewScheduler(cleanup *CleanupService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cleanup: cleanup,
		log:     log,
		stopCh:  make(chan struct{}),
	}
}

// Start запускает фоновые задачи очистки
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info("starting cleanup scheduler")

	go s.runSessionsCleanup(ctx)
	go s.runCartsCleanup(ctx)
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	s.log.Info("stopping cleanup scheduler")
	close(s.stopCh)
}

// runSessionsCleanup чистит сессии и коды сброса каждые 30 минут
func (s *Scheduler) runSessionsCleanup(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	// Выполняем сразу при старте
	if err := s.cleanup.CleanupExpiredSessions(ctx); err != nil {
		s.log.Error("initial expired sessions cleanup failed", zap.Error(err))
	}
	if err := s.cleanup.CleanupExpiredResetTokens(ctx); err != nil {
		s.log.Error("initial expired reset tokens cleanup failed", zap.Error(err))
	}

	for {
		select {
		case <-ticker.C:
			if err := s.cleanup.CleanupExpiredSessions(ctx); err != nil {
				s.log.Error("expired sessions cleanup failed", zap.Error(err))
			}
			if err := s.cleanup.CleanupExpiredResetTokens(ctx); err != nil {
				s.log.Error("expired reset tokens cleanup failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("sessions cleanup stopped")
			return
		case <-ctx.Done():
			s.log.Info("sessions cleanup cancelled")
			return
		}
	}
}

// runCartsCleanup чистит брошенные корзины каждые 6 часов
func (s *Scheduler) runCartsCleanup(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.cleanup.CleanupStaleCarts(ctx); err != nil {
				s.log.Error("stale carts cleanup failed", zap.Error(err))
			}
		case <-s.stopCh:
			s.log.Info("carts cleanup stopped")
			return
		case <-ctx.Done():
			s.log.Info("carts cleanup cancelled")
			return
		}
	}
}

// RunOnceNow выполняет полную очистку немедленно (для тестирования)
func (s *Scheduler) RunOnceNow(ctx context.Context) error {
	return s.cleanup.RunFullCleanup(ctx)
}
