// Package attachment moves item photos to the backend: a raw captured image
// is normalized by the imaging processor, posted to the upload endpoint, and
// exchanged for a stable reference URL stored on the item record.
package attachment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"golang.org/x/exp/slog"

	"bagsync/internal/imaging"
)

// ErrUploadFailed marks a failed photo upload. Callers saving an item with a
// freshly captured photo must fail closed on it: the owning create/update is
// not issued, and the caller can tell an upload failure from a save failure.
var ErrUploadFailed = errors.New("image upload failed")

// Pipeline prepares and uploads item photos. Prepare is CPU-bound and safe
// to run concurrently for independent images; nothing is shared between
// in-flight uploads.
type Pipeline struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger
	proc    *imaging.Processor
}

// NewPipeline wires the pipeline against the configured upload endpoint.
func NewPipeline(client *http.Client, baseURL string, log *slog.Logger) *Pipeline {
	return &Pipeline{
		client:  client,
		baseURL: baseURL,
		log:     log,
		proc:    imaging.NewProcessor(),
	}
}

// Prepare normalizes a raw captured image for upload.
func (p *Pipeline) Prepare(raw []byte) ([]byte, error) {
	return p.proc.Prepare(raw)
}

// Upload posts prepared bytes to the upload endpoint and returns the stable
// reference URL.
func (p *Pipeline) Upload(ctx context.Context, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.jpg")
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	p.log.Debug("uploading photo", "bytes", len(data))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUploadFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: server returned status %d", ErrUploadFailed, resp.StatusCode)
	}

	var uploadResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrUploadFailed, err)
	}
	if uploadResp.URL == "" {
		return "", fmt.Errorf("%w: server returned no url", ErrUploadFailed)
	}

	return uploadResp.URL, nil
}

// PrepareAndUpload runs both stages for a raw captured image.
func (p *Pipeline) PrepareAndUpload(ctx context.Context, raw []byte) (string, error) {
	data, err := p.Prepare(raw)
	if err != nil {
		return "", err
	}
	return p.Upload(ctx, data)
}
