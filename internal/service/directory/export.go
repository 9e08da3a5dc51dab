package directory

import (
	"context"
	"fmt"
	"strings"

	"bizhub/internal/domain"
	"bizhub/internal/profile"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Customers"

var exportHeaders = []string{
	"Name", "Telephone", "Email", "Address", "Orders", "Total Spend", "Currency", "Last Activity",
}

// Export renders the store's profiles matching query as an xlsx workbook
// and returns it with a suggested file name. Callers must Close the file.
func (s *Service) Export(ctx context.Context, store domain.Store, query string) (*excelize.File, string, error) {
	profiles, err := s.List(ctx, store, query)
	if err != nil {
		return nil, "", err
	}
	f, err := buildWorkbook(profiles)
	if err != nil {
		return nil, "", err
	}
	name := store.Slug
	if name == "" {
		name = store.ID
	}
	return f, fmt.Sprintf("customers_%s.xlsx", name), nil
}

func buildWorkbook(profiles []domain.Profile) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, h)
		f.SetCellStyle(exportSheet, cell, cell, bold)
	}

	orders := 0
	for i, p := range profiles {
		row := i + 2
		values := []any{
			p.Person.Name,
			p.Person.Telephone,
			p.Person.Email,
			formatAddress(p.Person.Address),
			p.Stats.OrderCount,
			profile.FormatMoney(p.Stats.Currency, p.Stats.TotalSpend),
			p.Stats.Currency,
			profile.FormatDate(p.Stats.LastOrderDate),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
		orders += p.Stats.OrderCount
	}

	summary := len(profiles) + 2
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", summary), "Total")
	f.SetCellValue(exportSheet, fmt.Sprintf("B%d", summary), fmt.Sprintf("%d customers", len(profiles)))
	f.SetCellValue(exportSheet, fmt.Sprintf("E%d", summary), orders)
	if summaryStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", summary), fmt.Sprintf("H%d", summary), summaryStyle)
	}

	for i, w := range []float64{24, 18, 26, 32, 8, 18, 10, 16} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, col, col, w)
	}
	return f, nil
}

func formatAddress(a *domain.PostalAddress) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, v := range []string{a.StreetAddress, a.AddressLocality, a.AddressRegion, a.PostalCode, a.AddressCountry} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
