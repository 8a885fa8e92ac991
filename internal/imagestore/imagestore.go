package imagestore

import "context"

// UploadResult holds the durable public URL of a stored asset together with
// the store's identifier for it, which is what Destroy expects back.
type UploadResult struct {
	PublicID string
	URL      string
}

// Store uploads binary images to a remote object store. Upload errors
// propagate verbatim to the caller; there is no retry and a failed upload
// must prevent persistence.
type Store interface {
	Upload(ctx context.Context, content []byte, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}
