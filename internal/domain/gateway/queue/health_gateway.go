package queue

import (
	"city-api/internal/domain/model"
	"city-api/pkg/sqs"
)

// WorkerHealth is the part of sqs.Worker the health gateway needs
type WorkerHealth interface {
	HealthCheck() (sqs.WorkerStatus, error)
}

type HealthGateway interface {
	Health() model.ComponentHealthStatus
	RegisterWorker(name string, worker WorkerHealth)
	UnregisterWorker(name string)
}
