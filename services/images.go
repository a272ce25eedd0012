package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveRecipeImage decodes a base64 data URI ("data:image/png;base64,...")
// and writes it under mediaRoot/recipes with a generated filename. It
// returns the path relative to mediaRoot.
func SaveRecipeImage(mediaRoot, dataURI string) (string, error) {
	payload := dataURI
	ext := ".png"

	if strings.HasPrefix(dataURI, "data:") {
		header, rest, found := strings.Cut(dataURI, ",")
		if !found {
			return "", fmt.Errorf("image data URI has no payload")
		}
		payload = rest

		mime := strings.TrimPrefix(header, "data:")
		mime = strings.TrimSuffix(mime, ";base64")
		knownExt, ok := imageExtensions[mime]
		if !ok {
			return "", fmt.Errorf("unsupported image type %q", mime)
		}
		ext = knownExt
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	relPath := filepath.Join("recipes", uuid.NewString()+ext)
	fullPath := filepath.Join(mediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(fullPath, raw, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return relPath, nil
}
