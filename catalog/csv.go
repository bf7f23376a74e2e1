package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"gitref/model"
)

// Column names of the catalog file header.
const (
	ColumnName        = "comando"
	ColumnDescription = "descrição"
	ColumnRank        = "ordem_importância"
	ColumnUsage       = "como_pode_ser_usado"
)

var requiredColumns = []string{ColumnName, ColumnDescription, ColumnRank, ColumnUsage}

// ParseCSV reads catalog rows from r. Columns are matched by header name, so
// their order does not matter and extra columns are ignored. name is only
// used in error messages.
func ParseCSV(name string, r io.Reader) ([]model.Command, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataFormatError{Source: name, Reason: "file is empty"}
	}
	if err != nil {
		return nil, csvError(name, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	columns := make(map[string]int, len(header))
	for i, h := range header {
		if !utf8.ValidString(h) {
			return nil, &DataFormatError{Source: name, Line: 1, Reason: "header is not valid UTF-8"}
		}
		h = strings.TrimSpace(h)
		if _, dup := columns[h]; dup && slices.Contains(requiredColumns, h) {
			return nil, &DataFormatError{Source: name, Line: 1, Field: h, Reason: "column appears more than once"}
		}
		columns[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, &DataFormatError{Source: name, Line: 1, Field: col, Reason: "required column is missing"}
		}
	}

	var records []model.Command
	seen := make(map[int]int)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, err)
		}
		line, _ := cr.FieldPos(0)

		for i, v := range row {
			if !utf8.ValidString(v) {
				return nil, &DataFormatError{Source: name, Line: line, Field: header[i], Reason: "value is not valid UTF-8"}
			}
		}

		rec, err := parseRow(row, columns)
		if err != nil {
			dfe := err.(*DataFormatError)
			dfe.Source, dfe.Line = name, line
			return nil, dfe
		}
		if first, dup := seen[rec.Rank]; dup {
			return nil, &DataFormatError{
				Source: name,
				Line:   line,
				Field:  ColumnRank,
				Value:  strconv.Itoa(rec.Rank),
				Reason: "rank already used on line " + strconv.Itoa(first),
			}
		}
		seen[rec.Rank] = line
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &DataFormatError{Source: name, Reason: "no command rows after the header"}
	}
	return records, nil
}

func parseRow(row []string, columns map[string]int) (model.Command, error) {
	name := strings.TrimSpace(row[columns[ColumnName]])
	if name == "" {
		return model.Command{}, &DataFormatError{Field: ColumnName, Reason: "command name is empty"}
	}

	rawRank := strings.TrimSpace(row[columns[ColumnRank]])
	rank, err := strconv.Atoi(rawRank)
	if err != nil {
		return model.Command{}, &DataFormatError{Field: ColumnRank, Value: rawRank, Reason: "rank is not an integer"}
	}
	if rank <= 0 {
		return model.Command{}, &DataFormatError{Field: ColumnRank, Value: rawRank, Reason: "rank must be positive"}
	}

	return model.Command{
		Name:        name,
		Description: strings.TrimSpace(row[columns[ColumnDescription]]),
		Rank:        rank,
		Usage:       strings.TrimSpace(row[columns[ColumnUsage]]),
	}, nil
}

func csvError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DataFormatError{Source: name, Line: pe.Line, Reason: pe.Err.Error(), Err: err}
	}
	return &DataFormatError{Source: name, Reason: "cannot read file", Err: err}
}
