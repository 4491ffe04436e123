package api

import (
	"context"
	"fmt"

	"city-api/internal/domain/model"
	"city-api/internal/domain/model/external"
	"city-api/pkg/http"
)

type citySourceGatewayImpl struct {
	httpClient *http.Client
	path       string
}

// NewCitySourceGateway creates a CitySourceGateway reading baseUrl + path
func NewCitySourceGateway(baseUrl string, path string, clientOptions http.ClientOptions) CitySourceGateway {
	return &citySourceGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		path:       path,
	}
}

func (c *citySourceGatewayImpl) FetchCities(ctx context.Context) ([]external.CityListItem, error) {
	successResp, _, _, err := c.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath(c.path).
		WithSuccessResp(&[]external.CityListItem{}).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("%w: fetching city list: %w", model.ErrConnection, err)
	}

	response, ok := successResp.(*[]external.CityListItem)
	if !ok || response == nil {
		return nil, fmt.Errorf("%w: empty city list response", model.ErrConnection)
	}
	return *response, nil
}
