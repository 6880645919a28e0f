package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vinfreak-api/internal/audit"
	"vinfreak-api/internal/car"
	"vinfreak-api/internal/importjob"
	"vinfreak-api/internal/util"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// importActor is the audit actor for the unauthenticated scraper endpoint.
// Admin uploads audit under the session actor instead.
const importActor = "importer"

var ErrEmptyFile = errors.New("file has no data rows")

type ImportService struct {
	DB    *gorm.DB
	Audit *audit.AuditService
	Jobs  *importjob.JobService
}

func carSnapshot(c *car.Car) map[string]any {
	b, err := json.Marshal(c)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

// ImportJSON ingests a scraped batch. Records without a VIN, with a VIN
// already in the table, or repeating a VIN seen earlier in the batch are
// skipped; the first occurrence wins. Each inserted row carries its own
// audit record, so a bad record skips without poisoning the rest.
func (s *ImportService) ImportJSON(ip string, records []RawRecord) (*ImportReport, error) {
	job, err := s.Jobs.CreateJob("json_bulk")
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	seen := map[string]bool{}
	var failures []string

	for i, rec := range records {
		c := normalizeRecord(rec)
		if c.VIN == nil {
			report.Skipped++
			continue
		}
		vin := *c.VIN
		if seen[vin] {
			report.Skipped++
			continue
		}

		var count int64
		if err := s.DB.Unscoped().Model(&car.Car{}).Where("vin = ?", vin).Count(&count).Error; err != nil {
			s.failJob(job.ID, report, err)
			return nil, err
		}
		if count > 0 {
			seen[vin] = true
			report.Skipped++
			continue
		}

		if err := s.insertCar(importActor, ip, &c); err != nil {
			report.Skipped++
			failures = append(failures, fmt.Sprintf("record %d (%s): %v", i, vin, err))
			continue
		}
		seen[vin] = true
		report.Inserted++
	}

	var errText *string
	if len(failures) > 0 {
		joined := strings.Join(failures, "\n")
		errText = &joined
	}
	if err := s.Jobs.Finish(job.ID, len(records), report.Inserted, 0, errText); err != nil {
		return nil, err
	}
	return report, nil
}

// failJob closes the job when the batch aborts mid-flight, keeping the
// partial counts and the cause instead of a forever-queued record.
func (s *ImportService) failJob(id uint, report *ImportReport, cause error) {
	msg := cause.Error()
	processed := report.Inserted + report.Updated + report.Skipped
	_ = s.Jobs.Finish(id, processed, report.Inserted, report.Updated, &msg)
}

func (s *ImportService) insertCar(actor, ip string, c *car.Car) error {
	_, err := s.Audit.PerformMutation(actor, audit.ActionCreate, "cars", "", ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
		if err := tx.Create(c).Error; err != nil {
			return nil, err
		}
		return &audit.MutationOutcome{
			RowID: strconv.FormatUint(uint64(c.ID), 10),
			After: carSnapshot(c),
		}, nil
	})
	return err
}

// ImportCSV ingests an admin spreadsheet upload. Rows whose VIN matches an
// existing car update only the submitted columns; the rest insert new rows.
func (s *ImportService) ImportCSV(actor, ip string, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return s.importRows(actor, ip, "csv_upload", rows)
}

// ImportXLSX reads the first sheet of a workbook and feeds it through the
// same update-or-insert path as CSV.
func (s *ImportService) ImportXLSX(actor, ip string, r io.Reader) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	return s.importRows(actor, ip, "xlsx_upload", rows)
}

func (s *ImportService) importRows(actor, ip, source string, rows [][]string) (*ImportReport, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	job, err := s.Jobs.CreateJob(source)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{}
	var failures []string

	for n, row := range rows[1:] {
		vals := rowValues(header, row)
		if len(vals) == 0 {
			report.Skipped++
			continue
		}
		updated, err := s.upsertRow(actor, ip, vals)
		if err != nil {
			report.Skipped++
			failures = append(failures, fmt.Sprintf("row %d: %v", n+2, err))
			continue
		}
		if updated {
			report.Updated++
		} else {
			report.Inserted++
		}
	}

	var errText *string
	if len(failures) > 0 {
		joined := strings.Join(failures, "\n")
		errText = &joined
	}
	if err := s.Jobs.Finish(job.ID, len(rows)-1, report.Inserted, report.Updated, errText); err != nil {
		return nil, err
	}
	return report, nil
}

// upsertRow applies one spreadsheet row inside its own audited transaction.
// A VIN match updates only the submitted columns, leaving the rest of the
// row alone; no match inserts.
func (s *ImportService) upsertRow(actor, ip string, vals map[string]any) (bool, error) {
	var existing car.Car
	var matched bool
	if vin, ok := vals["vin"].(string); ok && vin != "" {
		err := s.DB.Unscoped().Where("vin = ?", vin).First(&existing).Error
		switch {
		case err == nil:
			matched = true
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return false, err
		}
	}

	if matched {
		rowID := strconv.FormatUint(uint64(existing.ID), 10)
		_, err := s.Audit.PerformMutation(actor, audit.ActionUpdate, "cars", rowID, ip, func(tx *gorm.DB) (*audit.MutationOutcome, error) {
			var cur car.Car
			if err := tx.Unscoped().First(&cur, existing.ID).Error; err != nil {
				return nil, err
			}
			before := carSnapshot(&cur)
			if err := tx.Unscoped().Model(&cur).Updates(vals).Error; err != nil {
				return nil, err
			}
			return &audit.MutationOutcome{Before: before, After: vals}, nil
		})
		return true, err
	}

	b, err := json.Marshal(vals)
	if err != nil {
		return false, err
	}
	var c car.Car
	if err := json.Unmarshal(b, &c); err != nil {
		return false, err
	}
	return false, s.insertCar(actor, ip, &c)
}

// rowValues intersects a data row with the importable column set. Unknown
// headers are ignored, blank and unparseable cells are not submitted.
func rowValues(header, row []string) map[string]any {
	vals := map[string]any{}
	for i, col := range header {
		if i >= len(row) {
			break
		}
		parse, ok := importColumns[col]
		if !ok {
			continue
		}
		if v := parse(row[i]); v != nil {
			vals[col] = v
		}
	}
	return vals
}

type columnParser func(raw string) any

func stringColumn(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return raw
}

func intColumn(raw string) any {
	if n := util.ParseLooseInt(raw); n != nil {
		return *n
	}
	return nil
}

func floatColumn(raw string) any {
	if f := util.ParseLooseFloat(raw); f != nil {
		return *f
	}
	return nil
}

func jsonColumn(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" || !json.Valid([]byte(raw)) {
		return nil
	}
	return json.RawMessage(raw)
}

// importColumns is the spreadsheet allow-list, keyed by column name as it
// appears both in the header and in the cars table. Every car column except
// id and deleted_at is importable, matching what a full export emits.
var importColumns = map[string]columnParser{
	"vin":           stringColumn,
	"make":          stringColumn,
	"make_id":       intColumn,
	"model":         stringColumn,
	"model_id":      intColumn,
	"category_id":   intColumn,
	"dealership_id": intColumn,
	"trim":          stringColumn,
	"year":          intColumn,
	"mileage":       intColumn,
	"price":         floatColumn,
	"currency":      stringColumn,
	"city":          stringColumn,
	"state":         stringColumn,

	"auction_status": stringColumn,
	"lot_number":     stringColumn,
	"source":         stringColumn,
	"url":            stringColumn,
	"title":          stringColumn,
	"description":    stringColumn,
	"image_url":      stringColumn,
	"images_json":    jsonColumn,

	"seller_name":    stringColumn,
	"seller_rating":  floatColumn,
	"seller_reviews": intColumn,
	"seller_type":    stringColumn,
	"seller_url":     stringColumn,

	"exterior_color":    stringColumn,
	"interior_color":    stringColumn,
	"transmission":      stringColumn,
	"drivetrain":        stringColumn,
	"fuel_type":         stringColumn,
	"body_type":         stringColumn,
	"engine":            stringColumn,
	"highlights":        stringColumn,
	"equipment":         stringColumn,
	"modifications":     stringColumn,
	"known_flaws":       stringColumn,
	"service_history":   stringColumn,
	"ownership_history": stringColumn,
	"seller_notes":      stringColumn,
	"other_items":       stringColumn,
	"end_time":          stringColumn,
	"time_left":         stringColumn,
	"number_of_views":   intColumn,
	"number_of_bids":    intColumn,
	"location_address":  stringColumn,
	"location_url":      stringColumn,

	"posted_at": stringColumn,
}
