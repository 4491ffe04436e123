package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
)

const cityColumns = "id, name, country, latitude, longitude, is_favorite"

const upsertCitySQL = `
	INSERT INTO cities (name, country, latitude, longitude, is_favorite)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (name, country) DO UPDATE SET
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		is_favorite = excluded.is_favorite`

type SQLCCityGateway struct {
	DB      *sql.DB
	Dialect Dialect
}

var _ CityGateway = (*SQLCCityGateway)(nil)

func NewSQLCCityGateway(db *sql.DB, dialect Dialect) *SQLCCityGateway {
	return &SQLCCityGateway{DB: db, Dialect: dialect}
}

// whereClause builds the filter predicate shared by FindAll and Count
func (gateway *SQLCCityGateway) whereClause(filter model.CityFilter) (string, []any) {
	conditions := []string{"1=1"}
	args := []any{}

	if query := strings.TrimSpace(filter.Query); query != "" {
		conditions = append(conditions, gateway.Dialect.prefixMatch())
		args = append(args, escapeLike(query)+"%")
	}

	if filter.OnlyFavorites {
		conditions = append(conditions, "is_favorite = ?")
		args = append(args, true)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// FindAll retrieves one page of cities matching the filter
func (gateway *SQLCCityGateway) FindAll(ctx context.Context, filter model.CityFilter, page int, size int) ([]entity.City, error) {
	if page < 0 {
		page = 0
	}
	offset := page * size

	where, args := gateway.whereClause(filter)
	query := "SELECT " + cityColumns + " FROM cities" + where + " " + gateway.Dialect.orderByName() + " LIMIT ? OFFSET ?"
	args = append(args, size, offset)

	rows, err := gateway.DB.QueryContext(ctx, gateway.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]entity.City, 0, size)
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *city)
	}

	return cities, rows.Err()
}

// Count returns the number of cities matching the filter
func (gateway *SQLCCityGateway) Count(ctx context.Context, filter model.CityFilter) (int64, error) {
	where, args := gateway.whereClause(filter)

	var count int64
	err := gateway.DB.QueryRowContext(ctx, gateway.Dialect.Rebind("SELECT COUNT(*) FROM cities"+where), args...).Scan(&count)
	return count, err
}

// CountAll returns total count of cities
func (gateway *SQLCCityGateway) CountAll(ctx context.Context) (int64, error) {
	return gateway.Count(ctx, model.CityFilter{})
}

// FindByID finds a city by ID
func (gateway *SQLCCityGateway) FindByID(ctx context.Context, id int64) (*entity.City, error) {
	row := gateway.DB.QueryRowContext(ctx, gateway.Dialect.Rebind("SELECT "+cityColumns+" FROM cities WHERE id = ?"), id)

	city, err := scanCity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return city, nil
}

// InsertAll upserts cities in a single transaction with a prepared statement
func (gateway *SQLCCityGateway) InsertAll(ctx context.Context, cities []entity.City) (int64, error) {
	if len(cities) == 0 {
		return 0, nil
	}

	tx, err := gateway.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted, err := gateway.insertInTx(ctx, tx, cities)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ToggleFavorite flips is_favorite atomically and returns the updated city
func (gateway *SQLCCityGateway) ToggleFavorite(ctx context.Context, id int64) (*entity.City, error) {
	row := gateway.DB.QueryRowContext(ctx, gateway.Dialect.Rebind(
		"UPDATE cities SET is_favorite = NOT is_favorite WHERE id = ? RETURNING "+cityColumns), id)

	city, err := scanCity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return city, nil
}

// DeleteAll removes every city and returns how many were deleted
func (gateway *SQLCCityGateway) DeleteAll(ctx context.Context) (int64, error) {
	result, err := gateway.DB.ExecContext(ctx, "DELETE FROM cities")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ReplaceAll clears the table and inserts cities in one transaction
func (gateway *SQLCCityGateway) ReplaceAll(ctx context.Context, cities []entity.City) (int64, error) {
	tx, err := gateway.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cities"); err != nil {
		return 0, err
	}

	inserted, err := gateway.insertInTx(ctx, tx, cities)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (gateway *SQLCCityGateway) insertInTx(ctx context.Context, tx *sql.Tx, cities []entity.City) (int64, error) {
	if len(cities) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, gateway.Dialect.Rebind(upsertCitySQL))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, city := range cities {
		result, err := stmt.ExecContext(ctx, city.Name, city.Country, city.Latitude, city.Longitude, city.IsFavorite)
		if err != nil {
			return 0, fmt.Errorf("insert city %q (%s): %w", city.Name, city.Country, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += affected
	}
	return inserted, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCity(row rowScanner) (*entity.City, error) {
	var city entity.City
	if err := row.Scan(&city.ID, &city.Name, &city.Country, &city.Latitude, &city.Longitude, &city.IsFavorite); err != nil {
		return nil, err
	}
	return &city, nil
}
