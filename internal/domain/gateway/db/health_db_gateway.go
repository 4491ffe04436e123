package db

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"city-api/internal/domain/model"
)

const healthPingTimeout = 2 * time.Second

// HealthDBGateway reports whether the city store is reachable
type HealthDBGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}

// pingHealth pings conn and describes the store with its engine and driver
func pingHealth(ctx context.Context, conn *sql.DB, engine string, driver string) model.ComponentHealthStatus {
	details := map[string]string{
		"engine": engine,
		"driver": driver,
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	start := time.Now()
	if err := conn.PingContext(ctx); err != nil {
		details["message"] = err.Error()
		return model.ComponentHealthStatus{Status: model.StatusDown, Details: details}
	}

	details["latency"] = time.Since(start).String()
	details["open_connections"] = strconv.Itoa(conn.Stats().OpenConnections)
	return model.ComponentHealthStatus{Status: model.StatusUp, Details: details}
}
