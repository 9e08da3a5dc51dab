package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bizhub/internal/domain"
	customersvc "bizhub/internal/service/customer"
)

type CustomerWriter interface {
	Create(ctx context.Context, storeID string, in customersvc.CreateInput) (*domain.Customer, error)
}

// CSVImporter reads a customer directory export and creates standalone
// customers for one store.
type CSVImporter struct {
	reader  *csv.Reader
	writer  CustomerWriter
	storeID string
}

func NewCSVImporter(r io.Reader, w CustomerWriter, storeID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:  csvr,
		writer:  w,
		storeID: storeID,
	}
}

// Run creates one customer per data row. Blank rows are skipped; a row with
// data but no name stops the import.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing name column")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		in, ok := parseRow(record, index)
		if !ok {
			continue
		}
		if in.Name == "" {
			return imported, fmt.Errorf("line %d: %w: name required", line, domain.ErrInvalidInput)
		}
		if _, err := i.writer.Create(ctx, i.storeID, in); err != nil {
			return imported, fmt.Errorf("line %d: create customer %q: %w", line, in.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (customersvc.CreateInput, bool) {
	in := customersvc.CreateInput{
		Name:      pick(record, index, "name"),
		Telephone: pick(record, index, "telephone"),
		Email:     pick(record, index, "email"),
	}
	addr := customersvc.AddressInput{
		StreetAddress:   pick(record, index, "streetAddress"),
		AddressLocality: pick(record, index, "addressLocality"),
		AddressRegion:   pick(record, index, "addressRegion"),
		PostalCode:      pick(record, index, "postalCode"),
		AddressCountry:  pick(record, index, "addressCountry"),
	}
	if addr != (customersvc.AddressInput{}) {
		in.Address = &addr
	}
	empty := in.Name == "" && in.Telephone == "" && in.Email == "" && in.Address == nil
	return in, !empty
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
