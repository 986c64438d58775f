package domain

import "context"

// ImageUpload is a raw image received at the boundary.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore uploads raw image bytes to the hosting collaborator and returns
// a stable public URL. The upload is synchronous and must complete before the
// owning record is persisted; a failure aborts the whole create/update.
type ImageStore interface {
	Upload(ctx context.Context, img ImageUpload) (url string, err error)
}
