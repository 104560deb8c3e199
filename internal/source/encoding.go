package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// lookupEncoding maps an IANA charset name to a decoder. UTF-8 (and its
// aliases) maps to nil: в этом случае перекодировать нечего.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		// IANA знает имя, но у x/text нет реализации.
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}
