package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies the character encoding of a source file.
// The source dataset ships in Latin-1, so that is the default; reading
// under the wrong encoding mangles text silently, which is why the
// encoding is explicit rather than inferred.
type Encoding string

const (
	EncodingLatin1      Encoding = "latin1"
	EncodingWindows1252 Encoding = "windows1252"
	EncodingUTF8        Encoding = "utf8"
)

// ParseEncoding maps a config string onto a supported Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latin1", "latin-1", "iso-8859-1", "":
		return EncodingLatin1, nil
	case "windows1252", "windows-1252", "cp1252":
		return EncodingWindows1252, nil
	case "utf8", "utf-8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %q", s)
	}
}

// decoder returns the x/text decoder for the encoding.
func (e Encoding) decoder() (*encoding.Decoder, error) {
	switch e {
	case EncodingLatin1:
		return charmap.ISO8859_1.NewDecoder(), nil
	case EncodingWindows1252:
		return charmap.Windows1252.NewDecoder(), nil
	case EncodingUTF8:
		return unicode.UTF8.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %q", e)
	}
}

// Load reads the delimited file at path under the given encoding and
// returns the raw table. The header row becomes the column identifiers;
// every column of the fixed schema must be present or the load fails.
// No row-level validation happens here.
func Load(path string, enc Encoding) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	dec, err := enc.decoder()
	if err != nil {
		return nil, err
	}

	return read(transform.NewReader(file, dec), path)
}

// read parses CSV content from an already-decoded reader.
func read(r io.Reader, path string) (*RawTable, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	table := &RawTable{Headers: headers, index: make(map[string]int, len(headers))}
	for i, h := range headers {
		table.index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := table.index[col]; !ok {
			return nil, fmt.Errorf("dataset %s: missing required column %q", path, col)
		}
	}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		table.Rows = append(table.Rows, row)
	}

	slog.Debug("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(headers)))

	return table, nil
}

// column returns the value of the named column for a row.
// The column set was verified at load time, so a miss here means the
// RawTable was constructed by hand with a broken header.
func (t *RawTable) column(row []string, name string) string {
	idx, ok := t.index[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
