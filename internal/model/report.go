package model

// Personalization is optional flavor shown alongside a result
type Personalization struct {
	SunSign            string `json:"sunSign,omitempty" bson:"sunSign,omitempty"`
	MoonSign           string `json:"moonSign,omitempty" bson:"moonSign,omitempty"`
	Age                int    `json:"age,omitempty" bson:"age,omitempty"`
	RelationshipStatus string `json:"relationshipStatus,omitempty" bson:"relationshipStatus,omitempty"`
}

// Share carries the text and link used for social sharing
type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
}

// Report is the assembled results view for a completed session
type Report struct {
	SessionID       string          `json:"sessionId"`
	Result          Result          `json:"result"`
	Archetype       Archetype       `json:"archetype"`
	Pattern         PatternProfile  `json:"pattern"`
	ReportLabel     DominanceLabel  `json:"reportLabel"`
	Personalization Personalization `json:"personalization"`
	Share           Share           `json:"share"`
}

// PatternStat is one entry of the aggregate pattern distribution
type PatternStat struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// Stats is the aggregate view over completed sessions
type Stats struct {
	Completed int           `json:"completed"`
	Patterns  []PatternStat `json:"patterns"`
	Drivers   []PatternStat `json:"drivers"`
}
