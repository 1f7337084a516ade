package imaging

import (
	"bytes"
	"errors"
	"net/http"
)

var ErrUnsupportedFormat = errors.New("imaging: unsupported picture format")

// Leading bytes of each accepted picture format.
var signatures = map[string][][]byte{
	"image/jpeg": {{0xFF, 0xD8, 0xFF}},
	"image/png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/gif":  {[]byte("GIF87a"), []byte("GIF89a")},
	"image/webp": {[]byte("RIFF")},
}

// Sniff returns the MIME type of a picture upload. The content must both
// carry a known signature and be detected as the same type, so a renamed
// document is rejected before it reaches the decoder.
func Sniff(data []byte) (string, error) {
	if len(data) < 4 {
		return "", ErrUnsupportedFormat
	}
	mime := http.DetectContentType(data)
	sigs, ok := signatures[mime]
	if !ok {
		return "", ErrUnsupportedFormat
	}
	for _, sig := range sigs {
		if bytes.HasPrefix(data, sig) {
			return mime, nil
		}
	}
	return "", ErrUnsupportedFormat
}
