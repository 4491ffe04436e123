package health

import (
	"context"
	"sync"

	"city-api/internal/domain/gateway/cache"
	"city-api/internal/domain/gateway/db"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway    db.HealthDBGateway
	queueGateway queue.HealthGateway
	cacheGateway cache.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, queueGateway queue.HealthGateway, cacheGateway cache.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:    dbGateway,
		queueGateway: queueGateway,
		cacheGateway: cacheGateway,
	}
}

// CheckHealth checks every component in parallel
func (useCase *healthUseCase) CheckHealth(ctx context.Context) model.HealthResponse {
	var wg sync.WaitGroup
	var dbHealth, queueHealth, cacheHealth model.ComponentHealthStatus

	wg.Add(3)
	go func() {
		defer wg.Done()
		dbHealth = useCase.dbGateway.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		queueHealth = useCase.queueGateway.Health()
	}()
	go func() {
		defer wg.Done()
		cacheHealth = useCase.cacheGateway.Health(ctx)
	}()
	wg.Wait()

	overallStatus := model.StatusUp
	if dbHealth.Status != model.StatusUp ||
		queueHealth.Status == model.StatusDown ||
		cacheHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.HealthResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Queue:    queueHealth,
		Cache:    cacheHealth,
	}
}
