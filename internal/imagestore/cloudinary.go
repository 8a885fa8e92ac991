package imagestore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryStore struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStore(client *cloudinary.Cloudinary) Store {
	return &cloudinaryStore{client: client}
}

// Upload sends the image bytes to Cloudinary. The public ID is derived from
// a digest of the content, so retrying the same upload overwrites the same
// remote object instead of creating a duplicate.
func (s *cloudinaryStore) Upload(ctx context.Context, content []byte, folder string) (*UploadResult, error) {
	digest := sha256.Sum256(content)

	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
		PublicID:     hex.EncodeToString(digest[:16]),
		Folder:       folder,
		ResourceType: "image",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}

	return &UploadResult{
		PublicID: resp.PublicID,
		URL:      resp.SecureURL,
	}, nil
}

func (s *cloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", resp.Result)
	}
	return nil
}
