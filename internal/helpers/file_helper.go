package helpers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
}

var DefaultImageUploadConfig = UploadConfig{
	MaxSizeBytes: 5 * 1024 * 1024, // 5MB
	AllowedMimeTypes: []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	},
}

// ReadImageFile reads the uploaded file into memory after checking its size
// and sniffed content type. The bytes go to the remote image store, never to
// local disk.
func ReadImageFile(fileHeader *multipart.FileHeader, configs ...UploadConfig) ([]byte, error) {
	config := DefaultImageUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return nil, fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("uploaded file is empty")
	}

	mimeType := http.DetectContentType(content)
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType == allowedType {
			return content, nil
		}
	}
	return nil, fmt.Errorf("invalid file type. Allowed types: %v", config.AllowedMimeTypes)
}
