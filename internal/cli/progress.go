package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/schollz/progressbar/v3"
)

// LoadWithProgress reads the file at path for upload, drawing a byte
// progress bar on w while it reads.
func LoadWithProgress(path string, w io.Writer) (model.UploadedFile, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close file", "path", path, "error", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return model.UploadedFile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))

	var dst io.Writer = &buf
	var bar *progressbar.ProgressBar
	if info.Size() > 0 {
		bar = newByteBar(info.Size(), filepath.Base(path), w)
		dst = io.MultiWriter(&buf, bar)
	}

	if _, err := io.Copy(dst, f); err != nil {
		return model.UploadedFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
	}

	return model.UploadedFile{
		Name:      filepath.Base(path),
		MediaType: model.MediaTypeForPath(path),
		Data:      buf.Bytes(),
	}, nil
}

func newByteBar(size int64, name string, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan][bold]Reading %s[reset]", name)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
