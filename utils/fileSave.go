package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func ValidateImageFileType(w http.ResponseWriter, header *multipart.FileHeader) bool {
	mimeType := header.Header.Get("Content-Type")
	if !SupportedImageTypes[mimeType] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, WebP.", http.StatusBadRequest)
		return false
	}
	return true
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveFile writes an uploaded file into folder under a generated name and
// returns that name.
func SaveFile(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	if err := EnsureDir(folder); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", GenerateID(12), filepath.Ext(header.Filename))
	filePath := filepath.Join(folder, filename)

	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return "", err
	}

	return filename, nil
}

// SaveImageWithThumbnail stores the original upload and a 300px-wide
// thumbnail next to it, returning both filenames.
func SaveImageWithThumbnail(file multipart.File, header *multipart.FileHeader, folder string) (string, string, error) {
	filename, err := SaveFile(file, header, folder)
	if err != nil {
		return "", "", err
	}

	img, err := imaging.Open(filepath.Join(folder, filename))
	if err != nil {
		return "", "", fmt.Errorf("failed to open saved image: %w", err)
	}

	thumbName := "thumb_" + filename
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(folder, thumbName)); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return filename, thumbName, nil
}
