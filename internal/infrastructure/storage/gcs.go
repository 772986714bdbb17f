package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/mediashelf/media-tracker/internal/core/ports"
)

// GCSImageStore keeps item images in a Google Cloud Storage bucket.
// Objects live under items/<prefix>/<n>.<ext> and are addressed by
// their public url.
type GCSImageStore struct {
	client *storage.Client
	bucket string
	log    zerolog.Logger
}

func NewGCSImageStore(ctx context.Context, bucket, credentialsFile string, log zerolog.Logger) (*GCSImageStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &GCSImageStore{client: client, bucket: bucket, log: log}, nil
}

func (s *GCSImageStore) Save(ctx context.Context, prefix string, uploads []ports.ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for i, up := range uploads {
		object := fmt.Sprintf("items/%s/%d%s", prefix, i, extension(up.Filename))

		w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
		w.ContentType = up.ContentType
		if _, err := w.Write(up.Data); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("write object %s: %w", object, err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("close object %s: %w", object, err)
		}

		urls = append(urls, s.publicURL(object))
	}
	return urls, nil
}

func (s *GCSImageStore) Replace(ctx context.Context, prefix string, old []string, uploads []ports.ImageUpload) ([]string, error) {
	if err := s.Delete(ctx, old); err != nil {
		s.log.Warn().Err(err).Msg("stale image cleanup failed")
	}
	return s.Save(ctx, prefix, uploads)
}

// Delete removes the objects behind the given urls. External urls
// that do not point into this bucket are skipped.
func (s *GCSImageStore) Delete(ctx context.Context, urls []string) error {
	for _, u := range urls {
		object, ok := s.objectPath(u)
		if !ok {
			continue
		}
		if err := s.client.Bucket(s.bucket).Object(object).Delete(ctx); err != nil {
			return fmt.Errorf("delete object %s: %w", object, err)
		}
	}
	return nil
}

func (s *GCSImageStore) publicURL(object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object)
}

func (s *GCSImageStore) objectPath(url string) (string, bool) {
	prefix := fmt.Sprintf("https://storage.googleapis.com/%s/", s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func extension(filename string) string {
	if ext := path.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ".jpg"
}

var _ ports.ImageStore = (*GCSImageStore)(nil)
