package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/fgridley/photo-journal/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"segment_index", "segment_name", "is_transit", "transit_from",
	"transit_to", "date", "photo_url",
}

// ExportRow is one element of the JSON export.
type ExportRow struct {
	SegmentIndex int                `json:"segment_index"`
	SegmentName  string             `json:"segment_name"`
	IsTransit    bool               `json:"is_transit"`
	TransitFrom  *string            `json:"transit_from,omitempty"`
	TransitTo    *string            `json:"transit_to,omitempty"`
	Date         openapi_types.Date `json:"date"`
	PhotoURL     string             `json:"photo_url"`
}

// GetExport handles GET /timeline/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "csv" && format != "json" {
		writeJSON(w, http.StatusBadRequest, requestBody("format must be csv or json"))
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	if format == "csv" {
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="timeline.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
		return
	}

	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// buildCSV encodes domain rows as CSV, header first.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(exportRowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// exportRowToResponse maps a domain.ExportRow to its JSON shape.
// Empty transit endpoints become nil pointers (omitted in JSON).
func exportRowToResponse(r domain.ExportRow) ExportRow {
	row := ExportRow{
		SegmentIndex: r.SegmentIndex,
		SegmentName:  r.SegmentName,
		IsTransit:    r.IsTransit,
		Date:         openapi_types.Date{Time: r.Date},
		PhotoURL:     r.PhotoURL,
	}
	if r.TransitFrom != "" {
		row.TransitFrom = &r.TransitFrom
	}
	if r.TransitTo != "" {
		row.TransitTo = &r.TransitTo
	}
	return row
}

// exportRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func exportRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		strconv.Itoa(r.SegmentIndex),
		r.SegmentName,
		strconv.FormatBool(r.IsTransit),
		r.TransitFrom,
		r.TransitTo,
		r.Date.Format(openapi_types.DateFormat),
		r.PhotoURL,
	}
}
