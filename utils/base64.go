package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidDataURL       = errors.New("invalid image: expected data:image/<type>;base64,<data>")
	ErrUnsupportedImageType = errors.New("unsupported image type: use jpeg, png, webp or gif")
)

// imageExtensions lists the accepted content types and the extension each is stored under.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// DecodeDataURL splits "data:image/png;base64,...." into content type and bytes.
// Only the content types in imageExtensions are accepted.
func DecodeDataURL(s string) (string, []byte, error) {
	meta, data, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrInvalidDataURL
	}
	contentType := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64"))
	if _, ok := imageExtensions[contentType]; !ok {
		return "", nil, ErrUnsupportedImageType
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, ErrInvalidDataURL
	}
	return contentType, raw, nil
}

// ExtensionFor returns the stored extension for an accepted content type, "" otherwise.
func ExtensionFor(contentType string) string {
	return imageExtensions[strings.ToLower(contentType)]
}
