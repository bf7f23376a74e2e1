// Package catalog loads the Git command catalog and holds it as an immutable,
// rank-ordered collection.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gitref/model"
)

// Catalog is the validated command set, sorted ascending by rank. It is never
// mutated after construction, so it can be shared between readers freely.
type Catalog struct {
	records []model.Command
	byRank  map[int]int
}

// New validates records and returns them as a catalog. Every name must be
// non-empty and every rank positive and unique.
func New(records []model.Command) (*Catalog, error) {
	sorted := slices.Clone(records)
	byRank := make(map[int]int, len(sorted))
	for _, r := range sorted {
		if strings.TrimSpace(r.Name) == "" {
			return nil, &DataFormatError{
				Field:  ColumnName,
				Value:  strconv.Itoa(r.Rank),
				Reason: "command name is empty",
			}
		}
		if r.Rank <= 0 {
			return nil, &DataFormatError{
				Field:  ColumnRank,
				Value:  strconv.Itoa(r.Rank),
				Reason: fmt.Sprintf("rank of %q must be a positive integer", r.Name),
			}
		}
		if _, dup := byRank[r.Rank]; dup {
			return nil, &DataFormatError{
				Field:  ColumnRank,
				Value:  strconv.Itoa(r.Rank),
				Reason: fmt.Sprintf("rank of %q is already used", r.Name),
			}
		}
		byRank[r.Rank] = 0
	}

	slices.SortFunc(sorted, func(a, b model.Command) int {
		return a.Rank - b.Rank
	})
	for i, r := range sorted {
		byRank[r.Rank] = i
	}

	return &Catalog{records: sorted, byRank: byRank}, nil
}

// Load reads every record from src and builds the catalog. Any failure is
// reported as a *DataFormatError naming the source.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, asDataFormatError(src.Name(), err)
	}
	if len(records) == 0 {
		return nil, &DataFormatError{Source: src.Name(), Reason: "catalog has no commands"}
	}
	c, err := New(records)
	if err != nil {
		return nil, asDataFormatError(src.Name(), err)
	}
	return c, nil
}

func asDataFormatError(source string, err error) error {
	var dfe *DataFormatError
	if errors.As(err, &dfe) {
		if dfe.Source == "" {
			dfe.Source = source
		}
		return dfe
	}
	return &DataFormatError{Source: source, Reason: "cannot read catalog", Err: err}
}

// Len returns the number of commands.
func (c *Catalog) Len() int {
	return len(c.records)
}

// At returns the i-th command in rank order.
func (c *Catalog) At(i int) model.Command {
	return c.records[i]
}

// Records returns a copy of all commands in rank order.
func (c *Catalog) Records() []model.Command {
	return slices.Clone(c.records)
}

// ByRank looks up the command with the given rank.
func (c *Catalog) ByRank(rank int) (model.Command, bool) {
	i, ok := c.byRank[rank]
	if !ok {
		return model.Command{}, false
	}
	return c.records[i], true
}
