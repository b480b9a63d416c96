// Package media реализует клиент внешнего хостинга изображений
// с Cloudinary-совместимым API загрузки.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент хостинга изображений.
type Client struct {
	uploadURL    string
	uploadPreset string
	httpClient   *http.Client
}

// NewClient создаёт клиент с адресом и пресетом загрузки провайдера.
func NewClient(uploadURL, uploadPreset string) *Client {
	return &Client{
		uploadURL:    uploadURL,
		uploadPreset: uploadPreset,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload отправляет файл multipart-запросом и возвращает публичный URL.
// Имя ресурса у провайдера генерируется случайно, чтобы повторные
// загрузки не затирали друг друга.
func (c *Client) Upload(ctx context.Context, file io.Reader) (string, error) {
	const op = "media.Upload"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", uuid.New().String()+".jpg")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("%s: %w", op, errors.New("empty secure_url in response"))
	}
	return body.SecureURL, nil
}
