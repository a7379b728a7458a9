package blob

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Decode converts a base64 payload into bytes. A data-URL header such as
// "data:application/pdf;base64," is discarded up to the first comma.
func Decode(encoded string) ([]byte, error) {
	if i := strings.IndexByte(encoded, ','); i >= 0 {
		encoded = encoded[i+1:]
	}
	encoded = strings.TrimSpace(encoded)

	b, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return b, nil
}

// Encode returns the standard base64 form of b.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// EncodeDataURL returns b as a base64 data URL with the given MIME type.
func EncodeDataURL(mimeType string, b []byte) string {
	return "data:" + mimeType + ";base64," + Encode(b)
}

// MediaType returns the MIME type declared by a data-URL header, or "" when
// encoded has no such header.
func MediaType(encoded string) string {
	if !strings.HasPrefix(encoded, "data:") {
		return ""
	}
	i := strings.IndexByte(encoded, ',')
	if i < 0 {
		return ""
	}
	meta := encoded[len("data:"):i]
	if j := strings.IndexByte(meta, ';'); j >= 0 {
		meta = meta[:j]
	}
	return meta
}
