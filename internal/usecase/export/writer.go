package export

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func (f Format) Valid() bool { return f == FormatCSV || f == FormatXLSX }

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// WriteCSV writes every cell double-quoted, with embedded quotes doubled.
func WriteCSV(w io.Writer, t Table) error {
	bw := bufio.NewWriter(w)
	writeRow := func(cells []string) error {
		for i, c := range cells {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(`"` + strings.ReplaceAll(c, `"`, `""`) + `"`); err != nil {
				return err
			}
		}
		_, err := bw.WriteString("\r\n")
		return err
	}
	if err := writeRow(t.Header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := writeRow(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var sheetNameBad = regexp.MustCompile(`[\[\]:*?/\\]`)

// SheetName makes name usable as a worksheet title.
func SheetName(name string) string {
	s := strings.TrimSpace(sheetNameBad.ReplaceAllString(name, " "))
	s = strings.Trim(s, "'")
	if r := []rune(s); len(r) > 31 {
		s = strings.TrimSpace(string(r[:31]))
	}
	if s == "" {
		return "Sheet1"
	}
	return s
}

// WriteXLSX writes t into a single sheet named after the form with a bold header row.
func WriteXLSX(w io.Writer, sheet string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(sheet)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := setRow(f, name, 1, t.Header); err != nil {
		return err
	}
	if len(t.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", last, bold); err != nil {
			return err
		}
	}
	for i, r := range t.Rows {
		if err := setRow(f, name, i+2, r); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}

var fileNameBad = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename is "<form>_<from>_<to>.<ext>" with dates as 2006-01-02. An open
// side of the range is written as "all".
func Filename(formName string, from, to time.Time, format Format) string {
	base := strings.Trim(fileNameBad.ReplaceAllString(formName, "_"), "_")
	if base == "" {
		base = "form"
	}
	return fmt.Sprintf("%s_%s_%s.%s", base, day(from), day(to), format)
}

func day(t time.Time) string {
	if t.IsZero() {
		return "all"
	}
	return t.Format("2006-01-02")
}
