// Package geocoding реализует клиент внешнего сервиса геокодирования OpenCage.
//
// Клиент переводит свободный текст адреса в координаты. Ошибки делятся
// на две категории: ErrAddressNotFound, когда сервис ответил, но адрес
// не распознан, и обёрнутая транспортная ошибка во всех остальных случаях.
// Повторных попыток нет.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrAddressNotFound сигнализирует, что сервис не нашёл ни одного
// результата для переданного адреса.
var ErrAddressNotFound = errors.New("address not found")

const defaultAPIURL = "https://api.opencagedata.com"

// Coordinates — результат геокодирования.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Client клиент OpenCage Geocoding API.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт клиент с данным API-ключом. Пустой apiURL
// заменяется адресом боевого сервиса.
func NewClient(apiKey, apiURL string) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// Resolve переводит текст адреса в координаты первого результата.
func (c *Client) Resolve(ctx context.Context, address string) (Coordinates, error) {
	const op = "geocoding.Resolve"

	q := url.Values{}
	q.Set("q", address)
	q.Set("key", c.apiKey)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/geocode/v1/json?"+q.Encode(), nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Coordinates{}, fmt.Errorf("%s: %w", op, err)
	}

	if body.Status.Code != http.StatusOK || len(body.Results) == 0 {
		return Coordinates{}, ErrAddressNotFound
	}

	return Coordinates{
		Latitude:  body.Results[0].Geometry.Lat,
		Longitude: body.Results[0].Geometry.Lng,
	}, nil
}
