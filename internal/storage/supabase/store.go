// Package supabase implements storage.ObjectStore on Supabase Storage.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/songlingo/songlingo/internal/storage"
)

type Config struct {
	URL        string
	ServiceKey string
	Bucket     string
}

type Store struct {
	client *resty.Client
	config Config
}

func NewStore(config Config) *Store {
	client := resty.New().
		SetBaseURL(strings.TrimRight(config.URL, "/")).
		SetAuthToken(config.ServiceKey).
		SetHeader("apikey", config.ServiceKey)
	return &Store{
		client: client,
		config: config,
	}
}

// Upload implements storage.ObjectStore.
func (s *Store) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetHeader("Cache-Control", "max-age=31536000").
		SetBody(data).
		Post(s.objectPath(name))
	if err != nil {
		return "", fmt.Errorf("client.R.Post > %w", err)
	}
	switch {
	case res.StatusCode() == http.StatusConflict:
		return "", fmt.Errorf("upload %s: %w", name, storage.ErrObjectExists)
	case res.IsError():
		return "", fmt.Errorf("upload %s: status code: %d, body: %s", name, res.StatusCode(), string(res.Body()))
	}
	return s.PublicURL(name), nil
}

// PublicURL returns the URL under which a public bucket serves name.
func (s *Store) PublicURL(name string) string {
	return strings.TrimRight(s.config.URL, "/") + "/storage/v1/object/public/" + url.PathEscape(s.config.Bucket) + "/" + escapeName(name)
}

func (s *Store) objectPath(name string) string {
	return "/storage/v1/object/" + url.PathEscape(s.config.Bucket) + "/" + escapeName(name)
}

func escapeName(name string) string {
	segments := strings.Split(name, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
