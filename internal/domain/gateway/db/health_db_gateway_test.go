package db

import (
	"context"
	"testing"

	"city-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestSQLCHealthDBGateway_Health(t *testing.T) {
	_, database := setupTestGateway(t)
	gateway := NewSQLCHealthDBGateway(database, "sqlite")

	health := gateway.Health(context.Background())
	assert.Equal(t, model.StatusUp, health.Status)
	assert.Equal(t, "sqlc", health.Details["engine"])
	assert.Equal(t, "sqlite", health.Details["driver"])
	assert.NotEmpty(t, health.Details["latency"])

	_ = database.Close()

	health = gateway.Health(context.Background())
	assert.Equal(t, model.StatusDown, health.Status)
	assert.Equal(t, "sqlite", health.Details["driver"])
	assert.NotEmpty(t, health.Details["message"])
}
