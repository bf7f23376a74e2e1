// Package filter applies tier and search criteria to a catalog.
package filter

import (
	"strings"

	"gitref/catalog"
	"gitref/model"

	"github.com/sahilm/fuzzy"
)

// Apply returns the commands that pass both the tier and the search
// predicate, in catalog order. An unknown tier selects every tier.
//
// Counts are computed per tier over the commands matching the search text
// only, so the sidebar shows where the matches are no matter which tier is
// selected.
func Apply(c *catalog.Catalog, criteria model.FilterCriteria) model.FilteredView {
	tier := criteria.Tier
	if !tier.Valid() {
		tier = model.TierAll
	}
	search := normalize(criteria.Search)

	view := model.FilteredView{
		Records: []model.Command{},
		Counts:  make(map[model.Tier]int, len(model.Tiers)),
		Total:   c.Len(),
	}
	for _, t := range model.Tiers {
		view.Counts[t] = 0
	}

	for i := 0; i < c.Len(); i++ {
		rec := c.At(i)
		if !matches(rec, search) {
			continue
		}
		view.Counts[rec.Tier()]++
		if InTier(rec, tier) {
			view.Records = append(view.Records, rec)
		}
	}
	return view
}

// InTier reports whether rec belongs to tier. TierAll admits everything.
func InTier(rec model.Command, tier model.Tier) bool {
	return tier == model.TierAll || tier.Contains(rec.Rank)
}

// MatchSearch reports whether text occurs, ignoring case, in the name,
// description or usage of rec. Blank text matches every command.
func MatchSearch(rec model.Command, text string) bool {
	return matches(rec, normalize(text))
}

func matches(rec model.Command, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Name), needle) ||
		strings.Contains(strings.ToLower(rec.Description), needle) ||
		strings.Contains(strings.ToLower(rec.Usage), needle)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Suggest fuzzy matches text against command names and returns at most
// limit commands, best match first. It backs the "did you mean" hint shown
// when a search finds nothing.
func Suggest(c *catalog.Catalog, text string, limit int) []model.Command {
	text = strings.TrimSpace(text)
	if text == "" || limit <= 0 {
		return nil
	}

	names := make([]string, c.Len())
	for i := range names {
		names[i] = c.At(i).Name
	}

	found := fuzzy.Find(text, names)
	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]model.Command, len(found))
	for i, m := range found {
		out[i] = c.At(m.Index)
	}
	return out
}
