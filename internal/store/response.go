package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Harshitk-cp/consensus/internal/domain"
)

const DefaultIDColumn = "Informant"

// ResponseStore reads binary response tables from CSV files.
type ResponseStore struct {
	idColumn string
}

func NewResponseStore(idColumn string) *ResponseStore {
	if idColumn == "" {
		idColumn = DefaultIDColumn
	}
	return &ResponseStore{idColumn: idColumn}
}

// Load opens path and parses it with Parse.
func (s *ResponseStore) Load(ctx context.Context, path string) (*domain.ResponseMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return s.Parse(f)
}

// Parse reads a header row followed by one row per informant. The
// identifier column is dropped from the matrix and kept as row labels.
func (s *ResponseStore) Parse(r io.Reader) (*domain.ResponseMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrDataFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataFormat, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idIdx := -1
	items := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == s.idColumn && idIdx < 0 {
			idIdx = i
			continue
		}
		items = append(items, name)
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("%w: identifier column %q not found", domain.ErrDataFormat, s.idColumn)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no item columns besides %q", domain.ErrDataFormat, s.idColumn)
	}

	var informants []string
	var rows [][]float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrDataFormat, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d",
				domain.ErrDataFormat, line, len(record), len(header))
		}

		row := make([]float64, 0, len(items))
		col := 0
		for i, cell := range record {
			if i == idIdx {
				continue
			}
			v, err := parseBinary(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v",
					domain.ErrDataFormat, line, items[col], err)
			}
			row = append(row, v)
			col++
		}
		informants = append(informants, strings.TrimSpace(record[idIdx]))
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no informant rows", domain.ErrDataFormat)
	}

	return domain.NewResponseMatrix(informants, items, rows)
}

func parseBinary(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "1", "true":
		return 1, nil
	case "0", "false":
		return 0, nil
	case "":
		return 0, errors.New("missing value")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || (v != 0 && v != 1) {
		return 0, fmt.Errorf("value %q is not binary", cell)
	}
	return v, nil
}

// Write emits data in the same layout Parse reads.
func (s *ResponseStore) Write(w io.Writer, data *domain.ResponseMatrix) error {
	writer := csv.NewWriter(w)

	items := data.Items()
	if err := writer.Write(append([]string{s.idColumn}, items...)); err != nil {
		return err
	}

	record := make([]string, len(items)+1)
	for i, id := range data.Informants() {
		record[0] = id
		for j := range items {
			record[j+1] = strconv.Itoa(int(data.At(i, j)))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Save writes data to path, replacing any existing file.
func (s *ResponseStore) Save(ctx context.Context, path string, data *domain.ResponseMatrix) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.Write(f, data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
