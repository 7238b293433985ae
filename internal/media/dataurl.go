package media

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vincent-petithory/dataurl"
)

// MaxImageBytes is the largest image accepted inline or for upload.
const MaxImageBytes = 5 * 1024 * 1024

// ErrNotDataURL is returned when a reference is not a data: URL.
var ErrNotDataURL = errors.New("not a data URL")

// DataURL is a decoded data: URL.
type DataURL struct {
	MediaType string
	Data      []byte
}

// IsDataURL reports whether ref is an inline data: URL.
func IsDataURL(ref string) bool {
	return len(ref) > 5 && strings.EqualFold(ref[:5], "data:")
}

// ParseDataURL decodes "data:[<mediatype>][;base64],<data>".
func ParseDataURL(ref string) (*DataURL, error) {
	if !IsDataURL(ref) {
		return nil, ErrNotDataURL
	}
	du, err := dataurl.DecodeString(ref)
	if err != nil {
		return nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return &DataURL{MediaType: strings.ToLower(du.ContentType()), Data: du.Data}, nil
}

// DecodedSize is the payload size of a data URL in bytes. References that
// are not data URLs report zero; malformed data URLs report -1.
func DecodedSize(ref string) int {
	if !IsDataURL(ref) {
		return 0
	}
	du, err := ParseDataURL(ref)
	if err != nil {
		return -1
	}
	return len(du.Data)
}
