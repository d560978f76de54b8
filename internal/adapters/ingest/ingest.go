// Package ingest loads the institutional CSV datasets (students,
// academic records, observations and the sentiment training corpus)
// into domain rows. A malformed row is reported and skipped; it never
// aborts the rest of the file.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/vigia-edu/vigia/internal/domain/model"
	"github.com/vigia-edu/vigia/internal/domain/sentiment"
)

// Sentinel kinds for ingestion errors.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyFile     = errors.New("empty csv file")
)

// RowError reports a single skipped row.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Line, e.Err) }

func (e RowError) Unwrap() error { return e.Err }

// header maps lowercased column names to their index.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	row, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, err
	}
	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h, nil
}

// field returns the trimmed cell under any of the given column names.
func (h header) field(row []string, names ...string) (string, bool) {
	for _, name := range names {
		i, ok := h[name]
		if !ok || i >= len(row) {
			continue
		}
		return strings.TrimSpace(row[i]), true
	}
	return "", false
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// Students parses the roster CSV. Recognized columns: id, nombre,
// edad, grado, seccion (name aliases accepted).
func Students(r io.Reader) ([]model.Student, []RowError, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, nil, err
	}

	var (
		out      []model.Student
		rowErrs  []RowError
		lineNo   = 1
		idCols   = []string{"id", "id_estudiante", "student_id"}
		nameCols = []string{"nombre", "name", "nombre_completo"}
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: err})
			continue
		}
		id, ok := h.field(row, idCols...)
		if !ok || id == "" {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("%w: id", ErrMissingColumn)})
			continue
		}
		name, _ := h.field(row, nameCols...)
		ageText, _ := h.field(row, "edad", "age")
		grade, _ := h.field(row, "grado", "grade", "nivel")
		section, _ := h.field(row, "seccion", "section")

		out = append(out, model.Student{
			ID:      id,
			Name:    name,
			Age:     cast.ToInt(ageText),
			Grade:   grade,
			Section: section,
		})
	}
	return out, rowErrs, nil
}

// AcademicRecords parses the grades CSV. Period columns p1..p4 are
// optional; a blank final grade stays nil so downstream code can fall
// back to the period mean. Grades below or equal to gradeScaleCutoff
// are treated as 0-10 values and rescaled to 0-100.
func AcademicRecords(r io.Reader, gradeScaleCutoff float64) ([]model.AcademicRecord, []RowError, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, nil, err
	}

	rescale := func(v float64) float64 {
		if gradeScaleCutoff > 0 && v <= gradeScaleCutoff {
			return v * 10
		}
		return v
	}

	var (
		out     []model.AcademicRecord
		rowErrs []RowError
		lineNo  = 1
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: err})
			continue
		}
		id, ok := h.field(row, "id", "id_estudiante", "student_id")
		if !ok || id == "" {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("%w: id", ErrMissingColumn)})
			continue
		}
		rec := model.AcademicRecord{StudentID: id}
		rec.Subject, _ = h.field(row, "materia", "subject", "asignatura")

		for _, col := range []string{"p1", "p2", "p3", "p4"} {
			text, ok := h.field(row, col)
			if !ok || text == "" {
				continue
			}
			v, err := cast.ToFloat64E(text)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("column %s: %w", col, err)})
				continue
			}
			rec.Periods = append(rec.Periods, rescale(v))
		}

		if text, ok := h.field(row, "final", "cf", "nota_final"); ok && text != "" {
			v, err := cast.ToFloat64E(text)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("column final: %w", err)})
			} else {
				v = rescale(v)
				rec.Final = &v
			}
		}

		// A blank asistencia cell stays nil; zero attendance is a
		// recorded fact, not the absence of one.
		if text, ok := h.field(row, "asistencia", "attendance"); ok && text != "" {
			v, err := cast.ToFloat64E(text)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("column asistencia: %w", err)})
				continue
			}
			// Percent form normalizes to the [0,1] ratio the risk
			// formula expects.
			if v > 1 {
				v /= 100
			}
			rec.Attendance = &v
		}

		out = append(out, rec)
	}
	return out, rowErrs, nil
}

// Observations parses the qualitative observation log CSV. Dates accept
// 2006-01-02 and 02/01/2006; unparseable dates keep the zero time.
func Observations(r io.Reader) ([]model.Observation, []RowError, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, nil, err
	}

	var (
		out     []model.Observation
		rowErrs []RowError
		lineNo  = 1
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: err})
			continue
		}
		id, ok := h.field(row, "id", "id_estudiante", "student_id")
		if !ok || id == "" {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("%w: id", ErrMissingColumn)})
			continue
		}
		text, ok := h.field(row, "observacion", "observación", "texto", "text")
		if !ok || text == "" {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("%w: observacion", ErrMissingColumn)})
			continue
		}
		o := model.Observation{StudentID: id, Text: text}
		o.Author, _ = h.field(row, "autor", "author", "docente")
		if dateText, ok := h.field(row, "fecha", "date"); ok {
			o.Date = parseDate(dateText)
		}
		out = append(out, o)
	}
	return out, rowErrs, nil
}

func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Corpus parses the labeled sentiment corpus CSV. Labels accept
// positivo/negativo and 1/0 forms.
func Corpus(r io.Reader) ([]sentiment.Sample, []RowError, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, nil, err
	}

	var (
		out     []sentiment.Sample
		rowErrs []RowError
		lineNo  = 1
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: err})
			continue
		}
		text, ok := h.field(row, "texto", "text", "observacion")
		if !ok || text == "" {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("%w: texto", ErrMissingColumn)})
			continue
		}
		label, ok := h.field(row, "etiqueta", "label", "sentimiento")
		if !ok {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: fmt.Errorf("%w: etiqueta", ErrMissingColumn)})
			continue
		}
		positive, err := parseLabel(label)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: lineNo, Err: err})
			continue
		}
		out = append(out, sentiment.Sample{Text: text, Positive: positive})
	}
	return out, rowErrs, nil
}

func parseLabel(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positivo", "positive", "pos", "1", "true":
		return true, nil
	case "negativo", "negative", "neg", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("unknown sentiment label %q", s)
}

// StudentsFile, AcademicRecordsFile, ObservationsFile and CorpusFile
// are the path-taking variants used by the bootstrap path in cmd.

func StudentsFile(path string) ([]model.Student, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Students(f)
}

func AcademicRecordsFile(path string, gradeScaleCutoff float64) ([]model.AcademicRecord, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return AcademicRecords(f, gradeScaleCutoff)
}

func ObservationsFile(path string) ([]model.Observation, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Observations(f)
}

func CorpusFile(path string) ([]sentiment.Sample, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Corpus(f)
}
