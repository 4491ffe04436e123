package processor

import (
	"context"
	"errors"
	"testing"

	"city-api/internal/domain/entity"
	"city-api/internal/domain/model"
	"city-api/pkg/sqs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCityUseCase struct {
	requests []model.PreloadRequest
	err      error
}

func (r *recordingCityUseCase) ListCities(context.Context, string, bool, int, int) (*model.Page[entity.City], error) {
	return nil, nil
}
func (r *recordingCityUseCase) PreloadCities(context.Context) (int64, error)           { return 0, nil }
func (r *recordingCityUseCase) PreloadCitiesIfEmpty(context.Context) (bool, error)    { return false, nil }
func (r *recordingCityUseCase) ResetCities(context.Context, bool) (int64, error)      { return 0, nil }
func (r *recordingCityUseCase) ToggleFavorite(context.Context, int64) (*entity.City, error) {
	return nil, nil
}
func (r *recordingCityUseCase) FindCityByID(context.Context, int64) (*entity.City, error) {
	return nil, nil
}
func (r *recordingCityUseCase) CountCities(context.Context) (int64, error)           { return 0, nil }
func (r *recordingCityUseCase) RequestPreload(context.Context, bool) (string, error) { return "", nil }
func (r *recordingCityUseCase) ProcessPreloadRequest(_ context.Context, request model.PreloadRequest) error {
	r.requests = append(r.requests, request)
	return r.err
}

var _ sqs.Handler = (*CityPreloadProcessor)(nil)

func TestCityPreloadProcessor_HandleMessage(t *testing.T) {
	useCase := &recordingCityUseCase{}
	processor := NewCityPreloadProcessor(useCase)

	err := processor.HandleMessage(context.Background(), types.Message{
		MessageId: aws.String("m-1"),
		Body:      aws.String(`{"requestId":"r-1","force":true}`),
	})
	require.NoError(t, err)
	assert.Equal(t, []model.PreloadRequest{{RequestID: "r-1", Force: true}}, useCase.requests)
}

func TestCityPreloadProcessor_Failures(t *testing.T) {
	t.Run("missing body", func(t *testing.T) {
		err := NewCityPreloadProcessor(&recordingCityUseCase{}).HandleMessage(context.Background(), types.Message{})
		assert.Error(t, err)
	})

	t.Run("malformed body", func(t *testing.T) {
		useCase := &recordingCityUseCase{}
		err := NewCityPreloadProcessor(useCase).HandleMessage(context.Background(), types.Message{Body: aws.String("{")})
		assert.Error(t, err)
		assert.Empty(t, useCase.requests)
	})

	t.Run("use case error keeps the message", func(t *testing.T) {
		useCase := &recordingCityUseCase{err: model.ErrConnection}
		err := NewCityPreloadProcessor(useCase).HandleMessage(context.Background(), types.Message{Body: aws.String(`{"requestId":"r-2"}`)})
		assert.True(t, errors.Is(err, model.ErrConnection))
	})
}
