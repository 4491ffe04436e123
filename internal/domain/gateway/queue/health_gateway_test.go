package queue

import (
	"errors"
	"testing"

	"city-api/internal/domain/model"
	"city-api/pkg/sqs"

	"github.com/stretchr/testify/assert"
)

type stubWorker struct {
	status sqs.WorkerStatus
	err    error
}

func (s stubWorker) HealthCheck() (sqs.WorkerStatus, error) {
	return s.status, s.err
}

func TestQueueHealthGateway_Health(t *testing.T) {
	gateway := NewQueueHealthGateway()

	health := gateway.Health()
	assert.Equal(t, model.StatusUnknown, health.Status)

	gateway.RegisterWorker("city-preload", stubWorker{status: sqs.StatusUp})
	health = gateway.Health()
	assert.Equal(t, model.StatusUp, health.Status)
	assert.Equal(t, "UP", health.Details["city-preload_status"])
	assert.Equal(t, "1", health.Details["workers_up"])

	gateway.RegisterWorker("other", stubWorker{status: sqs.StatusDown, err: errors.New("not running")})
	health = gateway.Health()
	assert.Equal(t, model.StatusDown, health.Status)
	assert.Equal(t, "not running", health.Details["other_message"])
	assert.Equal(t, "2", health.Details["workers_total"])
	assert.Equal(t, "1", health.Details["workers_down"])

	gateway.UnregisterWorker("other")
	assert.Equal(t, model.StatusUp, gateway.Health().Status)
}
