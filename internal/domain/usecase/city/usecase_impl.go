package city

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/gateway/api"
	"city-api/internal/domain/gateway/db"
	"city-api/internal/domain/gateway/queue"
	"city-api/internal/domain/model"
	"city-api/pkg/log"
	"city-api/pkg/util/numberutils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type cityUseCase struct {
	queueName     string
	queueSender   queue.Sender
	sourceGateway api.CitySourceGateway
	dbGateway     db.CityGateway

	// serializes preloads and resets within this process
	preloadMu sync.Mutex
}

// NewCityUseCase wires the city operations. queueSender may be nil, in which
// case preload requests run inline.
func NewCityUseCase(queueName string, queueSender queue.Sender, sourceGateway api.CitySourceGateway, dbGateway db.CityGateway) UseCase {
	return &cityUseCase{
		queueName:     queueName,
		queueSender:   queueSender,
		sourceGateway: sourceGateway,
		dbGateway:     dbGateway,
	}
}

// ListCities returns a paginated list of cities with filters
func (uc *cityUseCase) ListCities(ctx context.Context, query string, onlyFavorites bool, page int, size int) (*model.Page[entity.City], error) {
	if page < 0 {
		page = 0
	}
	if size == 0 {
		size = model.DefaultPageSize
	}
	size = numberutils.ClampInt(size, 1, model.MaxPageSize)

	filter := model.CityFilter{
		Query:         strings.TrimSpace(query),
		OnlyFavorites: onlyFavorites,
	}

	cities, totalElements, err := uc.fetchCitiesAndCountInParallel(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}

	return model.NewPage(cities, page, size, totalElements), nil
}

// fetchCitiesAndCountInParallel fetches cities and count in parallel for pagination
func (uc *cityUseCase) fetchCitiesAndCountInParallel(ctx context.Context, filter model.CityFilter, page int, size int) ([]entity.City, int64, error) {
	var wg sync.WaitGroup
	var cities []entity.City
	var totalElements int64
	var citiesErr, countErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		cities, citiesErr = uc.dbGateway.FindAll(ctx, filter, page, size)
	}()
	go func() {
		defer wg.Done()
		totalElements, countErr = uc.dbGateway.Count(ctx, filter)
	}()
	wg.Wait()

	if citiesErr != nil {
		return nil, 0, fmt.Errorf("failed to find cities with filters: %w", citiesErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("failed to count cities with filters: %w", countErr)
	}

	return cities, totalElements, nil
}

func (uc *cityUseCase) PreloadCities(ctx context.Context) (int64, error) {
	uc.preloadMu.Lock()
	defer uc.preloadMu.Unlock()

	return uc.preload(ctx)
}

func (uc *cityUseCase) preload(ctx context.Context) (int64, error) {
	cities, err := uc.fetchRemoteCities(ctx)
	if err != nil {
		return 0, err
	}

	inserted, err := uc.dbGateway.InsertAll(ctx, cities)
	if err != nil {
		return 0, fmt.Errorf("failed to store preloaded cities: %w", err)
	}

	log.Info("Cities preloaded", zap.Int("fetched", len(cities)), zap.Int64("stored", inserted))
	return inserted, nil
}

func (uc *cityUseCase) fetchRemoteCities(ctx context.Context) ([]entity.City, error) {
	items, err := uc.sourceGateway.FetchCities(ctx)
	if err != nil {
		return nil, err
	}

	cities := make([]entity.City, 0, len(items))
	for _, item := range items {
		cities = append(cities, item.ToEntity())
	}
	return cities, nil
}

func (uc *cityUseCase) PreloadCitiesIfEmpty(ctx context.Context) (bool, error) {
	uc.preloadMu.Lock()
	defer uc.preloadMu.Unlock()

	count, err := uc.dbGateway.CountAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count cities: %w", err)
	}

	if count > 0 {
		log.Debug("City store already seeded", zap.Int64("count", count))
		return false, nil
	}

	if _, err := uc.preload(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (uc *cityUseCase) ResetCities(ctx context.Context, reload bool) (int64, error) {
	uc.preloadMu.Lock()
	defer uc.preloadMu.Unlock()

	if !reload {
		deleted, err := uc.dbGateway.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to delete cities: %w", err)
		}
		log.Info("City store cleared", zap.Int64("deleted", deleted))
		return deleted, nil
	}

	// fetch before touching the store so a remote failure keeps the current rows
	cities, err := uc.fetchRemoteCities(ctx)
	if err != nil {
		return 0, err
	}

	previous, err := uc.dbGateway.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count cities: %w", err)
	}

	inserted, err := uc.dbGateway.ReplaceAll(ctx, cities)
	if err != nil {
		return 0, fmt.Errorf("failed to replace cities: %w", err)
	}

	log.Info("City store reloaded", zap.Int64("deleted", previous), zap.Int64("stored", inserted))
	return previous, nil
}

func (uc *cityUseCase) ToggleFavorite(ctx context.Context, id int64) (*entity.City, error) {
	city, err := uc.dbGateway.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if city == nil {
		return nil, model.ErrCityNotFound
	}
	return city, nil
}

func (uc *cityUseCase) FindCityByID(ctx context.Context, id int64) (*entity.City, error) {
	city, err := uc.dbGateway.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find city by id: %w", err)
	}
	if city == nil {
		return nil, model.ErrCityNotFound
	}
	return city, nil
}

func (uc *cityUseCase) CountCities(ctx context.Context) (int64, error) {
	return uc.dbGateway.CountAll(ctx)
}

func (uc *cityUseCase) RequestPreload(ctx context.Context, force bool) (string, error) {
	request := model.PreloadRequest{
		RequestID: uuid.NewString(),
		Force:     force,
	}

	if uc.queueSender == nil {
		return request.RequestID, uc.ProcessPreloadRequest(ctx, request)
	}

	messageID, err := uc.queueSender.SendMessage(ctx, uc.queueName, request)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue preload request: %w", err)
	}

	log.Info("Preload request enqueued",
		zap.String("request_id", request.RequestID),
		zap.String("message_id", messageID),
		zap.Bool("force", force))
	return request.RequestID, nil
}

func (uc *cityUseCase) ProcessPreloadRequest(ctx context.Context, request model.PreloadRequest) error {
	log.Info("Processing preload request", zap.String("request_id", request.RequestID), zap.Bool("force", request.Force))

	if request.Force {
		_, err := uc.ResetCities(ctx, true)
		return err
	}

	_, err := uc.PreloadCitiesIfEmpty(ctx)
	return err
}
