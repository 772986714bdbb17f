package ports

import "context"

// ImageStore persists uploaded item images and returns their public
// urls. Save places files under the given prefix; Replace deletes the
// previous urls first. Delete ignores urls it does not own.
type ImageStore interface {
	Save(ctx context.Context, prefix string, uploads []ImageUpload) ([]string, error)
	Replace(ctx context.Context, prefix string, old []string, uploads []ImageUpload) ([]string, error)
	Delete(ctx context.Context, urls []string) error
}
