package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseDocument parses already-split records. Empty strings (a trailing
// newline produces one) are skipped; anything else must be a valid record.
func ParseDocument(raw []string) (*Document, error) {
	doc := &Document{Lines: make([]Line, 0, len(raw))}
	for i, r := range raw {
		if strings.TrimRight(r, "\r\n") == "" {
			continue
		}
		l, err := ParseLine(r)
		if err != nil {
			return nil, locate(err, i, -1)
		}
		doc.Lines = append(doc.Lines, l)
	}
	return doc, nil
}

// ReadDocument reads and parses all records from r.
func ReadDocument(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 128), 1<<20)

	var raw []string
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ENDF-6 data: %w", err)
	}
	return ParseDocument(raw)
}

// LoadDocument reads an ENDF-6 file from disk.
func LoadDocument(filepath string) (*Document, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ENDF-6 file: %w", err)
	}
	defer file.Close()

	doc, err := ReadDocument(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return doc, nil
}
