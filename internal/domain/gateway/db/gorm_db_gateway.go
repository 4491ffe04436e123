package db

import (
	"context"

	"city-api/internal/domain/model"

	"gorm.io/gorm"
)

// GormHealthDBGateway pings the pool underneath GormCityGateway
type GormHealthDBGateway struct {
	DB *gorm.DB
}

var _ HealthDBGateway = (*GormHealthDBGateway)(nil)

func NewGormHealthDBGateway(db *gorm.DB) *GormHealthDBGateway {
	return &GormHealthDBGateway{DB: db}
}

func (gateway *GormHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	driver := gateway.DB.Dialector.Name()

	sqlDB, err := gateway.DB.DB()
	if err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"engine":  "gorm",
				"driver":  driver,
				"message": err.Error(),
			},
		}
	}

	return pingHealth(ctx, sqlDB, "gorm", driver)
}
