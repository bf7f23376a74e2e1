package model

// Command is one entry of the Git command catalog.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rank        int    `json:"rank"`
	Usage       string `json:"usage"` // examples separated by ", "
}

// Tier returns the importance tier the command's rank falls in.
func (c Command) Tier() Tier {
	return TierOf(c.Rank)
}

// FilterCriteria is what the user is currently filtering on.
type FilterCriteria struct {
	Tier   Tier   `json:"tier"`
	Search string `json:"search"`
}

// FilteredView is the result of applying FilterCriteria to a catalog.
// Counts holds, per tier, how many commands match the search text
// regardless of the selected tier.
type FilteredView struct {
	Records []Command    `json:"records"`
	Counts  map[Tier]int `json:"counts"`
	Total   int          `json:"total"`
}

// Matched returns the number of records in the view.
func (v FilteredView) Matched() int {
	return len(v.Records)
}
