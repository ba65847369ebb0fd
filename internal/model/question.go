package model

// Domain is the life area a question belongs to
type Domain string

const (
	DomainLove       Domain = "LOVE"
	DomainMoney      Domain = "MONEY"
	DomainHealth     Domain = "HEALTH"
	DomainIdentity   Domain = "IDENTITY"
	DomainFamily     Domain = "FAMILY"
	DomainCareer     Domain = "CAREER"
	DomainFriendship Domain = "FRIENDSHIP"
	DomainConflict   Domain = "CONFLICT"
	DomainGrowth     Domain = "GROWTH"
	DomainStress     Domain = "STRESS"
	DomainPurpose    Domain = "PURPOSE"
	DomainReflection Domain = "REFLECTION"

	// Special, never scored
	DomainBirthDate          Domain = "BIRTHDATE"
	DomainRelationshipStatus Domain = "RELATIONSHIP_STATUS"
)

// QuestionType marks the non-scored special questions
type QuestionType string

const (
	QuestionTypeScored QuestionType = ""
	QuestionTypeDate   QuestionType = "date"   // Free text birth date
	QuestionTypeChoice QuestionType = "choice" // Enumerated, carries values instead of drivers
)

// Option is one selectable answer
type Option struct {
	Text   string `json:"text" yaml:"text"`
	Score  int    `json:"score,omitempty" yaml:"score,omitempty"`
	Driver Driver `json:"driver,omitempty" yaml:"driver,omitempty"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"` // Non-scored questions only

	// Tie-breaker hints, never sent to clients
	Signal      Pattern `json:"-" yaml:"signal,omitempty"`
	OverridesAs Pattern `json:"-" yaml:"overridesAs,omitempty"`
}

// Scored reports whether picking the option contributes to a driver
func (o Option) Scored() bool {
	return o.Driver != "" && o.Score > 0
}

// Question is a single quiz step; Index is its position in the bank
type Question struct {
	Index   int          `json:"index" yaml:"-"`
	Domain  Domain       `json:"domain" yaml:"domain"`
	Prompt  string       `json:"prompt" yaml:"prompt"`
	Type    QuestionType `json:"questionType,omitempty" yaml:"type,omitempty"`
	Options []Option     `json:"options,omitempty" yaml:"options,omitempty"`
}

// Option returns the option at idx, or false when out of range
func (q Question) Option(idx int) (Option, bool) {
	if idx < 0 || idx >= len(q.Options) {
		return Option{}, false
	}
	return q.Options[idx], true
}

// RelationshipStatus values carried by the relationship question
const (
	RelationshipSingle      = "single"
	RelationshipDating      = "dating"
	RelationshipCommitted   = "relationship"
	RelationshipMarried     = "married"
	RelationshipComplicated = "complicated"
)
