package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Coordinate is a geographic point in longitude/latitude order
type Coordinate struct {
	Lon float64
	Lat float64
}

// String formats the coordinate as a GeoJSON-style position
func (c Coordinate) String() string {
	return fmt.Sprintf("[%v,%v]", c.Lon, c.Lat)
}

// Row is a single sampled observation: one image's acquisition date,
// the sampled point, the image's cloud cover, and one corrected
// reflectance value per band. Nil cells are nulls; a row with every cell
// nil is the sentinel for "no imagery matched".
type Row struct {
	Date       *time.Time
	Coordinate *Coordinate
	CloudCover *float64
	Values     map[string]*float64
}

// IsNull reports whether every cell of the row is null
func (r Row) IsNull() bool {
	if r.Date != nil || r.Coordinate != nil || r.CloudCover != nil {
		return false
	}
	for _, v := range r.Values {
		if v != nil {
			return false
		}
	}
	return true
}

// Table is the ordered, row-oriented result of a point-series retrieval.
// Column order is Date, Coordinate, one column per band, CloudCover.
type Table struct {
	Bands []string
	Rows  []Row
}

// NewTable creates an empty table with columns for the given bands
func NewTable(bands []string) *Table {
	return &Table{Bands: append([]string{}, bands...)}
}

// NewNullRowTable creates the sentinel table for zero matching images:
// a single row whose cells are all null
func NewNullRowTable(bands []string) *Table {
	table := NewTable(bands)
	values := make(map[string]*float64, len(bands))
	for _, band := range bands {
		values[band] = nil
	}
	table.Append(Row{Values: values})
	return table
}

// Append adds a row to the end of the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Columns returns the table's column names in order
func (t *Table) Columns() []string {
	columns := make([]string, 0, len(t.Bands)+3)
	columns = append(columns, "Date", "Coordinate")
	columns = append(columns, t.Bands...)
	columns = append(columns, "CloudCover")
	return columns
}

// WriteCSV writes the table, header row included, to the given writer.
// Null cells become empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(t.Columns()); err != nil {
		return err
	}

	for _, row := range t.Rows {
		record := make([]string, 0, len(t.Bands)+3)
		record = append(record, formatDateCell(row.Date), formatCoordinateCell(row.Coordinate))
		for _, band := range t.Bands {
			record = append(record, formatFloatCell(row.Values[band]))
		}
		record = append(record, formatFloatCell(row.CloudCover))
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

func formatDateCell(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(DateOnlyLayout)
}

func formatCoordinateCell(coordinate *Coordinate) string {
	if coordinate == nil {
		return ""
	}
	return coordinate.String()
}

func formatFloatCell(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'g', -1, 64)
}
