package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Uploader stores an object and returns its key
type Uploader interface {
	Upload(ctx context.Context, objectKey, contentType string, body io.Reader) (string, error)
}

// maxImageBytes caps a mirrored image
const maxImageBytes = 10 << 20

// MirrorImage downloads imageURL and uploads it under folderPrefix, returning the object key
func MirrorImage(ctx context.Context, uploader Uploader, imageURL, folderPrefix string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxImageBytes {
		return "", fmt.Errorf("image %s exceeds %d bytes", imageURL, maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := path.Base(strings.Split(imageURL, "?")[0])
	if filename == "" || filename == "." || filename == "/" || len(filename) > 200 {
		filename = "image"
	}
	objectKey := fmt.Sprintf("%s/%s_%s", folderPrefix, uuid.NewString(), filename)

	return uploader.Upload(ctx, objectKey, contentType, bytes.NewReader(body))
}
