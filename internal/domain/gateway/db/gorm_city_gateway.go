package db

import (
	"context"
	"errors"
	"strings"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cityRecord maps the cities table for GORM
type cityRecord struct {
	ID         int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string  `gorm:"column:name"`
	Country    string  `gorm:"column:country"`
	Latitude   float64 `gorm:"column:latitude"`
	Longitude  float64 `gorm:"column:longitude"`
	IsFavorite bool    `gorm:"column:is_favorite"`
}

func (cityRecord) TableName() string {
	return "cities"
}

func newCityRecord(city entity.City) cityRecord {
	return cityRecord{
		Name:       city.Name,
		Country:    city.Country,
		Latitude:   city.Latitude,
		Longitude:  city.Longitude,
		IsFavorite: city.IsFavorite,
	}
}

func (r cityRecord) toEntity() entity.City {
	return entity.City{
		ID:         r.ID,
		Name:       r.Name,
		Country:    r.Country,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		IsFavorite: r.IsFavorite,
	}
}

const gormInsertBatchSize = 500

var upsertOnNameCountry = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}, {Name: "country"}},
	DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "is_favorite"}),
}

// GormCityGateway is the PostgreSQL CityGateway built on GORM
type GormCityGateway struct {
	DB *gorm.DB
}

var _ CityGateway = (*GormCityGateway)(nil)

func NewGormCityGateway(db *gorm.DB) *GormCityGateway {
	return &GormCityGateway{DB: db}
}

func (gateway *GormCityGateway) filtered(ctx context.Context, filter model.CityFilter) *gorm.DB {
	query := gateway.DB.WithContext(ctx).Model(&cityRecord{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where(Postgres.prefixMatch(), escapeLike(q)+"%")
	}
	if filter.OnlyFavorites {
		query = query.Where("is_favorite = ?", true)
	}
	return query
}

func (gateway *GormCityGateway) FindAll(ctx context.Context, filter model.CityFilter, page int, size int) ([]entity.City, error) {
	if page < 0 {
		page = 0
	}

	var records []cityRecord
	err := gateway.filtered(ctx, filter).
		Order("LOWER(name) ASC, id ASC").
		Limit(size).
		Offset(page * size).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	cities := make([]entity.City, 0, len(records))
	for _, record := range records {
		cities = append(cities, record.toEntity())
	}
	return cities, nil
}

func (gateway *GormCityGateway) Count(ctx context.Context, filter model.CityFilter) (int64, error) {
	var count int64
	err := gateway.filtered(ctx, filter).Count(&count).Error
	return count, err
}

func (gateway *GormCityGateway) CountAll(ctx context.Context) (int64, error) {
	return gateway.Count(ctx, model.CityFilter{})
}

func (gateway *GormCityGateway) FindByID(ctx context.Context, id int64) (*entity.City, error) {
	var record cityRecord
	err := gateway.DB.WithContext(ctx).First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	city := record.toEntity()
	return &city, nil
}

func (gateway *GormCityGateway) InsertAll(ctx context.Context, cities []entity.City) (int64, error) {
	if len(cities) == 0 {
		return 0, nil
	}

	var inserted int64
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		inserted, err = upsertRecords(tx, cities)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (gateway *GormCityGateway) ToggleFavorite(ctx context.Context, id int64) (*entity.City, error) {
	var records []cityRecord
	result := gateway.DB.WithContext(ctx).
		Model(&records).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("is_favorite", gorm.Expr("NOT is_favorite"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(records) == 0 {
		return nil, nil
	}

	city := records[0].toEntity()
	return &city, nil
}

func (gateway *GormCityGateway) DeleteAll(ctx context.Context) (int64, error) {
	result := gateway.DB.WithContext(ctx).Where("1 = 1").Delete(&cityRecord{})
	return result.RowsAffected, result.Error
}

func (gateway *GormCityGateway) ReplaceAll(ctx context.Context, cities []entity.City) (int64, error) {
	var inserted int64
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&cityRecord{}).Error; err != nil {
			return err
		}

		var err error
		inserted, err = upsertRecords(tx, cities)
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func upsertRecords(tx *gorm.DB, cities []entity.City) (int64, error) {
	if len(cities) == 0 {
		return 0, nil
	}

	unique := lastByNameCountry(cities)
	records := make([]cityRecord, 0, len(unique))
	for _, city := range unique {
		records = append(records, newCityRecord(city))
	}

	result := tx.Clauses(upsertOnNameCountry).CreateInBatches(&records, gormInsertBatchSize)
	return result.RowsAffected, result.Error
}

// lastByNameCountry keeps the last city of every (name, country) pair.
// One INSERT .. ON CONFLICT DO UPDATE cannot touch the same row twice.
func lastByNameCountry(cities []entity.City) []entity.City {
	type key struct{ name, country string }

	positions := make(map[key]int, len(cities))
	unique := make([]entity.City, 0, len(cities))
	for _, city := range cities {
		k := key{city.Name, city.Country}
		if i, ok := positions[k]; ok {
			unique[i] = city
			continue
		}
		positions[k] = len(unique)
		unique = append(unique, city)
	}
	return unique
}
