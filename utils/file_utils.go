package utils

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const (
	// Base directory for storing uploaded files
	uploadBaseDir = "uploads"
	// Base URL for serving files
	baseURL = "/uploads"
	// Maximum file size (10MB)
	maxFileSize = 10 * 1024 * 1024
)

// Allowed image extensions
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// cleanFilename removes any potentially dangerous characters from the filename
func cleanFilename(filename string) string {
	// Remove any path components
	filename = filepath.Base(filename)
	// Remove any non-alphanumeric characters except for dots and hyphens
	reg := regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	return reg.ReplaceAllString(filename, "")
}

// ValidateImageFile checks extension and size limits for an upload.
func ValidateImageFile(filename string, size int64) error {
	if size > maxFileSize {
		return fmt.Errorf("file too large. Maximum size is %d bytes", maxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("unsupported image format. Allowed formats: jpg, jpeg, png, gif, webp")
	}
	return nil
}

// SaveProductImage stores an uploaded product image under the store's
// directory and returns its serving URL.
func SaveProductImage(fileData []byte, filename, storeID string) (string, error) {
	cleanName := cleanFilename(filename)
	if err := ValidateImageFile(cleanName, int64(len(fileData))); err != nil {
		return "", err
	}

	// Unique name keeps concurrent uploads from clobbering each other
	finalName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), cleanName)
	fullPath := filepath.Join(uploadBaseDir, "products", storeID, finalName)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %v", err)
	}

	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return fmt.Sprintf("%s/products/%s/%s", baseURL, storeID, finalName), nil
}

// GenerateImageThumbnail produces a 320px-wide JPEG thumbnail for a stored
// image and returns the thumbnail URL.
func GenerateImageThumbnail(imageURL string) (string, error) {
	imagePath := strings.TrimPrefix(imageURL, baseURL+"/")
	fullImagePath := filepath.Join(uploadBaseDir, imagePath)

	img, err := imaging.Open(fullImagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %v", err)
	}

	// Resize to max width of 320px while maintaining aspect ratio
	resized := imaging.Resize(img, 320, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	imageFilename := filepath.Base(imagePath)
	thumbnailFilename := fmt.Sprintf("thumbnails/%s.jpg", strings.TrimSuffix(imageFilename, filepath.Ext(imageFilename)))
	fullThumbnailPath := filepath.Join(uploadBaseDir, thumbnailFilename)

	if err := os.MkdirAll(filepath.Dir(fullThumbnailPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %v", err)
	}

	if err := os.WriteFile(fullThumbnailPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %v", err)
	}

	return fmt.Sprintf("%s/%s", baseURL, thumbnailFilename), nil
}
