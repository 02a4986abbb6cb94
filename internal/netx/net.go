// Package netx holds the plain HTTP calls Mercury makes: project image
// uploads straight to object storage through presigned URLs, and JSON posts
// to webhooks.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
)

var httpClient = http.DefaultClient

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageContentType guesses the MIME type from the file extension and falls
// back to application/octet-stream.
func ImageContentType(name string) string {
	if ct, ok := imageTypes[filepath.Ext(name)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// PutPresigned PUTs data to a presigned URL. Any status other than 200 is an
// error that carries the response body.
func PutPresigned(ctx context.Context, url, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// PostJSON POSTs v encoded as JSON to url. Any 2xx status is success; other
// statuses are errors carrying the response body.
func PostJSON(ctx context.Context, url string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("post failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
