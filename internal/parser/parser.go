package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedEncoding indicates an input charset we cannot decode.
var ErrUnsupportedEncoding = errors.New("unsupported input encoding")

var charsets = map[string]encoding.Encoding{
	"windows-1251": charmap.Windows1251,
	"cp1251":       charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
}

// Decode converts raw input bytes to UTF-8 text. An empty name or "utf-8"
// passes the bytes through unchanged.
func Decode(b []byte, name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == "utf-8" || n == "utf8" {
		return string(b), nil
	}
	enc, ok := charsets[n]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// ParseFile reads a lead file from disk. Workbooks go through ParseXLSX;
// anything else is decoded with charset and parsed as delimited text.
func ParseFile(path, charset string) ([]lead.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseBytes(path, data, charset)
}

// ParseBytes parses already-fetched content; name selects the format.
func ParseBytes(name string, data []byte, charset string) ([]lead.Record, error) {
	if IsXLSX(name) {
		return ParseXLSX(data, "")
	}
	text, err := Decode(data, charset)
	if err != nil {
		return nil, err
	}
	return Parse(text), nil
}
