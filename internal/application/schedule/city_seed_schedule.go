package schedule

import (
	"context"
	"time"

	"city-api/internal/domain/usecase/city"
	"city-api/pkg/log"
	"city-api/pkg/redis"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	seedLockKey       = "city_seed_scheduler"
	seedLockNamespace = "city_schedules"
)

// CitySeedSchedulerConfig holds configuration for the seed scheduler
type CitySeedSchedulerConfig struct {
	CronExpression  string
	LockTTL         time.Duration
	RefreshInterval time.Duration
}

// CitySeedScheduler periodically seeds the city store when it is empty.
// With a redis client only the instance holding the distributed lock runs the cron.
type CitySeedScheduler struct {
	cron        *cron.Cron
	useCase     city.UseCase
	redisClient *redis.Client
	config      *CitySeedSchedulerConfig
	done        chan struct{}
}

// NewCitySeedScheduler creates a seed scheduler. redisClient may be nil.
func NewCitySeedScheduler(useCase city.UseCase, redisClient *redis.Client, cronExpression string, lockTTL int, refreshInterval int) *CitySeedScheduler {
	return &CitySeedScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		done:        make(chan struct{}),
		config: &CitySeedSchedulerConfig{
			CronExpression:  cronExpression,
			LockTTL:         time.Duration(lockTTL) * time.Second,
			RefreshInterval: time.Duration(refreshInterval) * time.Second,
		},
	}
}

// InitCitySeedScheduleTasks starts the scheduler in the background until ctx ends
func (s *CitySeedScheduler) InitCitySeedScheduleTasks(ctx context.Context) {
	go func() {
		defer close(s.done)

		if s.redisClient == nil {
			s.runUnlocked(ctx)
			return
		}

		lock := redis.NewScheduledTaskLock(
			s.redisClient,
			seedLockKey,
			s.getLockTTL(),
			s.getRefreshInterval(),
			seedLockNamespace,
		)

		// blocks while another instance holds the lock
		if err := lock.Lock(ctx); err != nil {
			log.Errorf("Failed to acquire distributed lock, city seed scheduler will not be initialized: %v", err)
			return
		}
		defer func() { _ = lock.Unlock(context.Background()) }()

		refreshErrChan := lock.AutoRefresh(ctx)

		if !s.startCron() {
			return
		}

		err := <-refreshErrChan
		s.Stop()

		if err != nil && ctx.Err() == nil {
			log.Errorf("City seed scheduler stopped due to auto-refresh failure: %v", err)
		} else {
			log.Info("City seed scheduler stopped gracefully")
		}
	}()
}

func (s *CitySeedScheduler) runUnlocked(ctx context.Context) {
	if !s.startCron() {
		return
	}
	<-ctx.Done()
	s.Stop()
	log.Info("City seed scheduler stopped gracefully")
}

func (s *CitySeedScheduler) startCron() bool {
	if _, err := s.cron.AddFunc(s.config.CronExpression, s.ExecuteScheduledTask); err != nil {
		log.Errorf("Failed to initialize city seed scheduler, cron will not be started: %v", err)
		return false
	}

	s.cron.Start()
	log.Infof("City seed scheduler started successfully with cron expression: %s", s.config.CronExpression)
	return true
}

// ExecuteScheduledTask seeds the store if it is empty
func (s *CitySeedScheduler) ExecuteScheduledTask() {
	requestID := uuid.New().String()
	log.Info("City seed scheduled task triggered", zap.String("request_id", requestID))

	seeded, err := s.useCase.PreloadCitiesIfEmpty(context.Background())
	if err != nil {
		log.Error("Failed to execute scheduled city seed", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info("Scheduled city seed completed", zap.String("request_id", requestID), zap.Bool("seeded", seeded))
}

// Stop gracefully stops the cron, waiting for a running task
func (s *CitySeedScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}

// Done is closed once the background goroutine has exited
func (s *CitySeedScheduler) Done() <-chan struct{} {
	return s.done
}

func (s *CitySeedScheduler) getLockTTL() time.Duration {
	if s.config.LockTTL > 0 {
		return s.config.LockTTL
	}
	return 10 * time.Minute
}

func (s *CitySeedScheduler) getRefreshInterval() time.Duration {
	if s.config.RefreshInterval > 0 {
		return s.config.RefreshInterval
	}
	return 1 * time.Minute
}
