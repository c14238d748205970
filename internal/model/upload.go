package model

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MediaTypeCSV is the media type sent for CSV uploads.
const MediaTypeCSV = "text/csv"

// UploadedFile is an opaque blob chosen by the user for analysis.
type UploadedFile struct {
	Name      string
	MediaType string
	Data      []byte
}

// IsCSV reports whether the file passes the client-side filter: either the declared
// media type is text/csv or the name ends in .csv.
func (f UploadedFile) IsCSV() bool {
	if f.MediaType != "" {
		if mt, _, err := mime.ParseMediaType(f.MediaType); err == nil && mt == MediaTypeCSV {
			return true
		}
	}
	return strings.HasSuffix(f.Name, ".csv")
}

// Size returns the size of the file in bytes.
func (f UploadedFile) Size() int {
	return len(f.Data)
}

// SizeKB formats the file size the way the upload surface shows it.
func (f UploadedFile) SizeKB() string {
	return fmt.Sprintf("%.1f KB", float64(len(f.Data))/1024)
}

// ContentType returns the media type to declare on upload.
func (f UploadedFile) ContentType() string {
	if f.MediaType != "" {
		return f.MediaType
	}
	return MediaTypeCSV
}

// MediaTypeForPath guesses a media type from a file extension.
func MediaTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return MediaTypeCSV
	}
	return mime.TypeByExtension(ext)
}

// LoadUploadedFile reads a file from disk into an UploadedFile.
func LoadUploadedFile(path string) (UploadedFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return UploadedFile{
		Name:      filepath.Base(path),
		MediaType: MediaTypeForPath(path),
		Data:      data,
	}, nil
}
