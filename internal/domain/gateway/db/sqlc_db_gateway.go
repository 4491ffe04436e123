package db

import (
	"context"
	"database/sql"

	"city-api/internal/domain/model"
)

// SQLCHealthDBGateway pings the database/sql connection behind SQLCCityGateway
type SQLCHealthDBGateway struct {
	DB     *sql.DB
	Driver string
}

var _ HealthDBGateway = (*SQLCHealthDBGateway)(nil)

func NewSQLCHealthDBGateway(db *sql.DB, driver string) *SQLCHealthDBGateway {
	return &SQLCHealthDBGateway{DB: db, Driver: driver}
}

func (gateway *SQLCHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	return pingHealth(ctx, gateway.DB, "sqlc", gateway.Driver)
}
