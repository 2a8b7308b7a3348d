package store

import (
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"go.uber.org/zap"
)

// SalesReportRow is one line of the units-sold report export.
type SalesReportRow struct {
	Product   string `csv:"product"`
	UnitsSold int    `csv:"units_sold"`
}

// SalesReport returns the units-sold report as rows sorted by product name.
func (s *OrderService) SalesReport() []SalesReportRow {
	sold := s.UnitsSoldPerProduct()
	rows := make([]SalesReportRow, 0, len(sold))
	for name, units := range sold {
		rows = append(rows, SalesReportRow{Product: name, UnitsSold: units})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Product < rows[j].Product })
	return rows
}

// ExportSalesReportCSV writes the units-sold report to a CSV file.
func (s *OrderService) ExportSalesReportCSV(path string) error {
	rows := s.SalesReport()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sales report file")
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return errors.Wrap(err, "write sales report")
	}

	zap.L().Info("sales report exported", zap.String("file", path), zap.Int("rows", len(rows)))
	return nil
}
