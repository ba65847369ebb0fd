package model

// DominanceLabel describes how concentrated the score is on the dominant driver
type DominanceLabel string

const (
	DominanceStrong   DominanceLabel = "Strong"
	DominanceModerate DominanceLabel = "Moderate"
	DominanceBalanced DominanceLabel = "Balanced"
	DominanceMixed    DominanceLabel = "Mixed"
)

// DriverRank is one entry of the ranked driver list
type DriverRank struct {
	Driver  Driver `json:"driver" bson:"driver"`
	Score   int    `json:"score" bson:"score"`
	Percent int    `json:"percent" bson:"percent"`
}

// Dominance is the ranking and concentration analysis of a score map
type Dominance struct {
	DominantDriver   Driver         `json:"dominantDriver" bson:"dominantDriver"`
	DominantScore    int            `json:"dominantScore" bson:"dominantScore"`
	SecondaryDriver  Driver         `json:"secondaryDriver,omitempty" bson:"secondaryDriver,omitempty"`
	SecondaryScore   int            `json:"secondaryScore" bson:"secondaryScore"`
	PatternDominance int            `json:"patternDominance" bson:"patternDominance"`
	Percentages      map[Driver]int `json:"percentages" bson:"percentages"`
	RankedDrivers    []DriverRank   `json:"rankedDrivers" bson:"rankedDrivers"`
}

// Result is the scored outcome of an answer set
type Result struct {
	DominantDriver    Driver         `json:"dominantDriver" bson:"dominantDriver"`
	DominantPattern   Pattern        `json:"dominantPattern" bson:"dominantPattern"`
	DriverScores      DriverScores   `json:"driverScores" bson:"driverScores"`
	DriverPercentages map[Driver]int `json:"driverPercentages" bson:"driverPercentages"`
	DominanceLabel    DominanceLabel `json:"dominanceLabel" bson:"dominanceLabel"`
	PatternDominance  int            `json:"patternDominance" bson:"patternDominance"`
	SecondaryDriver   Driver         `json:"secondaryDriver,omitempty" bson:"secondaryDriver,omitempty"`
	RankedDrivers     []DriverRank   `json:"rankedDrivers" bson:"rankedDrivers"`
	TotalScore        int            `json:"totalScore" bson:"totalScore"`
}

// Progress is a live preview of a partially answered quiz
type Progress struct {
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
	Complete bool    `json:"complete"`
	Result   *Result `json:"result"`
}
