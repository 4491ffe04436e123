package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"city-api/internal/domain/model"
	"city-api/internal/domain/usecase/city"
	"city-api/pkg/log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

type CityPreloadProcessor struct {
	cityUseCase city.UseCase
}

func NewCityPreloadProcessor(cityUseCase city.UseCase) *CityPreloadProcessor {
	return &CityPreloadProcessor{
		cityUseCase: cityUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface
func (p *CityPreloadProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return fmt.Errorf("received message %s without body", aws.ToString(msg.MessageId))
	}

	var request model.PreloadRequest
	if err := json.Unmarshal([]byte(*msg.Body), &request); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	log.Info("Processing preload message",
		zap.String("message_id", aws.ToString(msg.MessageId)),
		zap.String("request_id", request.RequestID))

	if err := p.cityUseCase.ProcessPreloadRequest(ctx, request); err != nil {
		return fmt.Errorf("failed to process preload request %s: %w", request.RequestID, err)
	}

	log.Info("Preload message processed", zap.String("request_id", request.RequestID))
	return nil
}
