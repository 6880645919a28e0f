package car

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the closed set of export encodings.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV, Format(""):
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", ErrUnknownFormat
}

// exportColumns fixes the column order for CSV/XLSX output; keys match the
// cars table column names. Every column of the model is emitted so an
// export can be re-imported without losing fields.
var exportColumns = []string{
	"id", "vin", "make", "make_id", "model", "model_id", "category_id", "dealership_id",
	"trim", "year", "mileage", "price", "currency", "city", "state",
	"auction_status", "lot_number", "source", "url", "title", "description",
	"image_url", "images_json",
	"seller_name", "seller_rating", "seller_reviews", "seller_type", "seller_url",
	"exterior_color", "interior_color", "transmission", "drivetrain", "fuel_type",
	"body_type", "engine", "highlights", "equipment", "modifications", "known_flaws",
	"service_history", "ownership_history", "seller_notes", "other_items",
	"end_time", "time_left", "number_of_views", "number_of_bids",
	"location_address", "location_url", "posted_at",
}

// ExportCars serializes the full live car set.
func (s *CarService) ExportCars(format Format) (contentType, filename string, out []byte, err error) {
	var cars []Car
	if err := s.DB.Order("COALESCE(posted_at,'') DESC, id DESC").Find(&cars).Error; err != nil {
		return "", "", nil, err
	}

	switch format {
	case FormatJSON:
		rows := make([]map[string]any, 0, len(cars))
		for i := range cars {
			rows = append(rows, snapshot(&cars[i]))
		}
		data, err := json.Marshal(rows)
		if err != nil {
			return "", "", nil, err
		}
		return "application/json", "cars.json", data, nil

	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(exportColumns); err != nil {
			return "", "", nil, err
		}
		for i := range cars {
			if err := w.Write(exportRecord(&cars[i])); err != nil {
				return "", "", nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return "", "", nil, err
		}
		return "text/csv", "cars.csv", buf.Bytes(), nil

	case FormatXLSX:
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		for col, name := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(sheet, cell, name); err != nil {
				return "", "", nil, err
			}
		}
		for row := range cars {
			rec := exportRecord(&cars[row])
			for col, val := range rec {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return "", "", nil, err
				}
			}
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return "", "", nil, err
		}
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "cars.xlsx", buf.Bytes(), nil
	}

	return "", "", nil, ErrUnknownFormat
}

func exportRecord(c *Car) []string {
	m := snapshot(c)
	rec := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		v, ok := m[col]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case []any, map[string]any:
			// structured columns (the image gallery) stay JSON text in the cell
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			rec[i] = string(b)
		default:
			rec[i] = fmt.Sprintf("%v", v)
		}
	}
	return rec
}
