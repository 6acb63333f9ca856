package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryUploader struct {
	key         string
	contentType string
	body        []byte
}

func (m *memoryUploader) Upload(_ context.Context, objectKey, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.key, m.contentType, m.body = objectKey, contentType, data
	return objectKey, nil
}

func TestMirrorImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/cream.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	up := &memoryUploader{}
	key, err := MirrorImage(context.Background(), up, srv.URL+"/img/cream.png?v=2", "catalog_images")
	require.NoError(t, err)
	require.Equal(t, up.key, key)
	require.True(t, strings.HasPrefix(key, "catalog_images/"))
	require.True(t, strings.HasSuffix(key, "_cream.png"))
	require.Equal(t, "image/png", up.contentType)
	require.Equal(t, []byte("png-bytes"), up.body)

	_, err = MirrorImage(context.Background(), up, srv.URL+"/missing.png", "catalog_images")
	require.Error(t, err)
}

type fakePresigner struct{}

func (fakePresigner) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://bucket.example/" + key + "?sig=1", nil
}

func TestPresignImageURLs(t *testing.T) {
	got := PresignImageURLs(context.Background(), fakePresigner{}, []string{"https://picsum.photos/200", "catalog_images/a.png", ""})
	require.Equal(t, []string{"https://picsum.photos/200", "https://bucket.example/catalog_images/a.png?sig=1", ""}, got)

	got = PresignImageURLs(context.Background(), nil, []string{"catalog_images/a.png"})
	require.Equal(t, []string{"catalog_images/a.png"}, got)
}
