// Package preview renders a staged image file into a data URL so the
// admin UI can show a local preview before anything is uploaded.
package preview

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// MaxPreviewBytes caps how much of a staged file the preview producer
// will consume; anything larger is rejected rather than inlined.
const MaxPreviewBytes = 10 << 20

// DataURL reads a staged file and returns it as a base64 data URL.
// The content type is sniffed from the bytes when the caller passes
// an empty one.
func DataURL(r io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPreviewBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file for preview: %w", err)
	}
	if len(data) > MaxPreviewBytes {
		return "", fmt.Errorf("file too large for preview (limit %d bytes)", MaxPreviewBytes)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
