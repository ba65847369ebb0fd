package model

// Pattern is one of the eight fine-grained patterns, two per driver
type Pattern string

const (
	PatternFixer         Pattern = "fixer"
	PatternPerfectionist Pattern = "perfectionist"
	PatternEscaper       Pattern = "escaper"
	PatternOverthinker   Pattern = "overthinker"
	PatternPleaser       Pattern = "pleaser"
	PatternPerformer     Pattern = "performer"
	PatternGuardedOne    Pattern = "guarded-one"
	PatternOvergiver     Pattern = "overgiver"
)

// Patterns lists every pattern, grouped by driver in canonical order
var Patterns = []Pattern{
	PatternFixer, PatternPerfectionist,
	PatternEscaper, PatternOverthinker,
	PatternPleaser, PatternPerformer,
	PatternGuardedOne, PatternOvergiver,
}

// PatternProfile is the descriptive content shown for a resolved pattern
type PatternProfile struct {
	Key          Pattern `json:"key" bson:"key"`
	Driver       Driver  `json:"driver" bson:"driver"`
	Name         string  `json:"name" bson:"name"`
	CoreBelief   string  `json:"coreBelief" bson:"coreBelief"`
	Strength     string  `json:"strength" bson:"strength"`
	Shadow       string  `json:"shadow" bson:"shadow"`
	ResetFocus   string  `json:"resetFocus" bson:"resetFocus"`
	Identity     string  `json:"identity" bson:"identity"`
	CallToAction string  `json:"callToAction" bson:"callToAction"`
}
