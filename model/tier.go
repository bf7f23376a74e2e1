package model

import (
	"fmt"
	"math"
	"strings"
)

// Tier classifies commands by how commonly they are used. The zero value
// selects every tier.
type Tier int

const (
	TierAll Tier = iota
	TierEssential
	TierIntermediate
	TierAdvanced
	TierTechnical
	TierSpecific
)

// Tiers lists the five concrete tiers in rank order. TierAll is not included.
var Tiers = []Tier{TierEssential, TierIntermediate, TierAdvanced, TierTechnical, TierSpecific}

type tierBounds struct {
	lo, hi int
}

var bounds = map[Tier]tierBounds{
	TierEssential:    {1, 10},
	TierIntermediate: {11, 30},
	TierAdvanced:     {31, 60},
	TierTechnical:    {61, 100},
	TierSpecific:     {101, math.MaxInt},
}

var tierNames = map[Tier]string{
	TierAll:          "all",
	TierEssential:    "essential",
	TierIntermediate: "intermediate",
	TierAdvanced:     "advanced",
	TierTechnical:    "technical",
	TierSpecific:     "specific",
}

// aliases maps every accepted spelling to its tier. Portuguese names come
// from the labels of the original data set.
var aliases = map[string]Tier{
	"":               TierAll,
	"0":              TierAll,
	"all":            TierAll,
	"todos":          TierAll,
	"1":              TierEssential,
	"1-10":           TierEssential,
	"essential":      TierEssential,
	"essentials":     TierEssential,
	"essencial":      TierEssential,
	"essenciais":     TierEssential,
	"2":              TierIntermediate,
	"11-30":          TierIntermediate,
	"intermediate":   TierIntermediate,
	"intermediário":  TierIntermediate,
	"intermediario":  TierIntermediate,
	"intermediários": TierIntermediate,
	"intermediarios": TierIntermediate,
	"3":              TierAdvanced,
	"31-60":          TierAdvanced,
	"advanced":       TierAdvanced,
	"avançado":       TierAdvanced,
	"avancado":       TierAdvanced,
	"avançados":      TierAdvanced,
	"avancados":      TierAdvanced,
	"4":              TierTechnical,
	"61-100":         TierTechnical,
	"technical":      TierTechnical,
	"técnico":        TierTechnical,
	"tecnico":        TierTechnical,
	"técnicos":       TierTechnical,
	"tecnicos":       TierTechnical,
	"5":              TierSpecific,
	"101+":           TierSpecific,
	"101-":           TierSpecific,
	"specific":       TierSpecific,
	"específico":     TierSpecific,
	"especifico":     TierSpecific,
	"específicos":    TierSpecific,
	"especificos":    TierSpecific,
}

// ParseTier resolves a tier from its name, index or range. Anything it does
// not recognize selects every tier.
func ParseTier(s string) Tier {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return TierAll
}

// KnownTier reports whether s names a tier (including "all").
func KnownTier(s string) bool {
	_, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// TierOf returns the tier containing rank. Non-positive ranks belong to no
// tier and yield TierAll.
func TierOf(rank int) Tier {
	for _, t := range Tiers {
		if t.Contains(rank) {
			return t
		}
	}
	return TierAll
}

// Valid reports whether t is TierAll or one of the five tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// Contains reports whether rank lies in the tier's inclusive range.
// TierAll contains every positive rank.
func (t Tier) Contains(rank int) bool {
	if rank <= 0 {
		return false
	}
	b, ok := bounds[t]
	if !ok {
		return true
	}
	return rank >= b.lo && rank <= b.hi
}

// Range returns the inclusive bounds of the tier. bounded is false for the
// open-ended Specific tier and for TierAll.
func (t Tier) Range() (lo, hi int, bounded bool) {
	b, ok := bounds[t]
	if !ok {
		return 1, math.MaxInt, false
	}
	return b.lo, b.hi, b.hi != math.MaxInt
}

// Next cycles forward through All and the five tiers.
func (t Tier) Next() Tier {
	return (t + 1) % Tier(len(tierNames))
}

// Prev cycles backward through All and the five tiers.
func (t Tier) Prev() Tier {
	n := Tier(len(tierNames))
	return (t + n - 1) % n
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Label is the human readable name with the rank range, e.g. "Essential (1-10)".
func (t Tier) Label() string {
	if t == TierAll || !t.Valid() {
		return "All commands"
	}
	name := tierNames[t]
	title := strings.ToUpper(name[:1]) + name[1:]
	lo, hi, bounded := t.Range()
	if !bounded {
		return fmt.Sprintf("%s (%d+)", title, lo)
	}
	return fmt.Sprintf("%s (%d-%d)", title, lo, hi)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	*t = ParseTier(string(text))
	return nil
}
