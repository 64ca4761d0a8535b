// export.go implements GET /plans/{planId}/export.
// Returns the plan schedule as a flat table, one row per activity.
// Supports ?format=csv (CSV) or the default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"mime"
	"net/http"
	"strconv"

	"github.com/tourday/planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day", "date", "date_label", "time", "title", "category",
	"location", "cost", "duration_min", "memo",
}

// ExportRow is one JSON row of a schedule export.
type ExportRow struct {
	DayNumber int             `json:"dayNumber"`
	Date      string          `json:"date"`
	DateLabel string          `json:"dateLabel"`
	Time      *string         `json:"time,omitempty"`
	Title     *string         `json:"title,omitempty"`
	Category  domain.Category `json:"category,omitempty"`
	Location  *string         `json:"location,omitempty"`
	Cost      *float64        `json:"cost,omitempty"`
	Duration  *int            `json:"duration,omitempty"`
	Memo      *string         `json:"memo,omitempty"`
}

// ExportSchedule handles GET /plans/{planId}/export.
func (s *Server) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}
	wantCSV := false
	switch deref(format) {
	case "", "json":
	case "csv":
		wantCSV = true
	default:
		writeJSON(w, http.StatusBadRequest, paramBody("format must be csv or json"))
		return
	}

	p, ok := s.loadPlan(w, r)
	if !ok {
		return
	}
	rows := domain.FlattenSchedule(p)

	if wantCSV {
		writeCSV(w, p.ID, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a download filename derived from planID.
func writeCSV(w http.ResponseWriter, planID string, rows []domain.ScheduleRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": planID + ".csv"}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToExportRow maps a schedule row to JSON. Empty activity fields
// become nil pointers so a day without activities carries only its date.
func domainRowToExportRow(r domain.ScheduleRow) ExportRow {
	return ExportRow{
		DayNumber: r.DayNumber,
		Date:      r.Date,
		DateLabel: r.DateLabel,
		Time:      optional(r.Time),
		Title:     optional(r.Title),
		Category:  r.Category,
		Location:  optional(r.Location),
		Cost:      r.Cost,
		Duration:  r.Duration,
		Memo:      optional(r.Memo),
	}
}

// domainRowToCSVRecord encodes a schedule row as a flat string slice.
// Absent cost and duration are written as empty strings.
func domainRowToCSVRecord(r domain.ScheduleRow) []string {
	var cost, duration string
	if r.Cost != nil {
		cost = strconv.FormatFloat(*r.Cost, 'f', -1, 64)
	}
	if r.Duration != nil {
		duration = strconv.Itoa(*r.Duration)
	}
	return []string{
		strconv.Itoa(r.DayNumber),
		r.Date,
		r.DateLabel,
		r.Time,
		r.Title,
		string(r.Category),
		r.Location,
		cost,
		duration,
		r.Memo,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
