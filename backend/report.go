// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const attendanceSheet = "Asistencia"

// AttendanceMessage renders the attendance list and totals as share text.
func AttendanceMessage(s AttendanceSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Listado de asistencia para el %s:\n\n", s.DateKey)
	for _, row := range s.Rows {
		status := "Presente"
		if row.Absent {
			status = "Ausente"
		}
		fmt.Fprintf(&sb, "%s: %s\n", row.Player.Name, status)
	}
	sb.WriteString("\nResumen:\n")
	fmt.Fprintf(&sb, "Total de jugadores: %d\n", s.Total)
	fmt.Fprintf(&sb, "Total presentes: %d\n", s.Present)
	fmt.Fprintf(&sb, "Total ausentes: %d", s.Absent)
	return sb.String()
}

const attendanceFilePrefix = "Control_Asistencia_"

// AttendanceFileName is the default export name for a date.
func AttendanceFileName(dateKey string) string {
	return attendanceFilePrefix + dateKey + ".xlsx"
}

// DateKeyFromFileName extracts the date from a default export name, or
// returns "" if path does not follow that naming.
func DateKeyFromFileName(path string) string {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, attendanceFilePrefix) || !strings.HasSuffix(base, ".xlsx") {
		return ""
	}
	key := strings.TrimSuffix(strings.TrimPrefix(base, attendanceFilePrefix), ".xlsx")
	if _, err := ParseDateKey(key); err != nil {
		return ""
	}
	return key
}

// ExportAttendance writes the attendance sheet as an XLSX workbook.
func ExportAttendance(w io.Writer, s AttendanceSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), attendanceSheet); err != nil {
		return fmt.Errorf("excelize.SetSheetName: %w", err)
	}

	rows := [][]any{{"Nombre", "Presente"}}
	for _, row := range s.Rows {
		present := "Sí"
		if row.Absent {
			present = "No"
		}
		rows = append(rows, []any{row.Player.Name, present})
	}
	rows = append(rows,
		nil,
		[]any{"Resumen", ""},
		[]any{"Total de jugadores", s.Total},
		[]any{"Total presentes", s.Present},
		[]any{"Total ausentes", s.Absent},
	)

	for i, values := range rows {
		if values == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(attendanceSheet, cell, &values); err != nil {
			return fmt.Errorf("excelize.SetSheetRow: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("excelize.WriteTo: %w", err)
	}
	return nil
}

// ReadAttendance parses a sheet written by ExportAttendance. Players in the
// result carry names only. Totals are recomputed from the rows.
func ReadAttendance(r io.Reader, dateKey string) (AttendanceSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return AttendanceSummary{}, fmt.Errorf("excelize.OpenReader: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(attendanceSheet)
	if err != nil {
		return AttendanceSummary{}, fmt.Errorf("excelize.GetRows: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) < 2 || rows[0][0] != "Nombre" || rows[0][1] != "Presente" {
		return AttendanceSummary{}, fmt.Errorf("%s: missing header row", attendanceSheet)
	}

	s := AttendanceSummary{DateKey: dateKey, Rows: make([]AttendanceRow, 0)}
	for i, row := range rows[1:] {
		if len(row) == 0 || row[0] == "" {
			break
		}
		var absent bool
		switch {
		case len(row) > 1 && row[1] == "Sí":
		case len(row) > 1 && row[1] == "No":
			absent = true
		default:
			return AttendanceSummary{}, fmt.Errorf("%s row %d: invalid presence", attendanceSheet, i+2)
		}
		s.Rows = append(s.Rows, AttendanceRow{Player: Player{Name: row[0]}, Absent: absent})
		s.Total++
		if absent {
			s.Absent++
		} else {
			s.Present++
		}
	}
	return s, nil
}
