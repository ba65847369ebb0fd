package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"patternquiz/internal/model"

	"gopkg.in/yaml.v3"
)

// ScoredQuestionCount is the number of leading questions that contribute to driver scores
const ScoredQuestionCount = 47

//go:embed bank.yaml
var defaultBankYAML []byte

var ErrInvalidBank = errors.New("invalid question bank")

// Bank is the immutable, ordered question list. Order is meaningful: it fixes domain
// membership and the scored-question cutoff.
type Bank struct {
	version   string
	questions []model.Question
	scored    int
}

type bankFile struct {
	Version     string           `yaml:"version"`
	OptionScore int              `yaml:"optionScore"`
	Questions   []model.Question `yaml:"questions"`
}

// DefaultBank decodes the embedded question bank
func DefaultBank() (*Bank, error) {
	return ParseBank(defaultBankYAML)
}

// MustDefaultBank is DefaultBank for program start-up and tests
func MustDefaultBank() *Bank {
	b, err := DefaultBank()
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBank decodes and validates a YAML question bank
func ParseBank(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	questions := make([]model.Question, len(f.Questions))
	for i, q := range f.Questions {
		opts := make([]model.Option, len(q.Options))
		for j, o := range q.Options {
			if o.Driver != "" && o.Score == 0 {
				o.Score = f.OptionScore
			}
			opts[j] = o
		}
		q.Options = opts
		questions[i] = q
	}

	return NewBank(f.Version, ScoredQuestionCount, questions)
}

// NewBank validates and builds a bank from questions already in memory.
// scored is the scored-question cutoff; the birth date and relationship status follow it.
func NewBank(version string, scored int, questions []model.Question) (*Bank, error) {
	qs := make([]model.Question, len(questions))
	copy(qs, questions)
	for i := range qs {
		qs[i].Index = i
	}
	b := &Bank{version: version, questions: qs, scored: scored}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bank) validate() error {
	if b.scored < 0 {
		return fmt.Errorf("%w: negative scored count %d", ErrInvalidBank, b.scored)
	}
	if len(b.questions) != b.scored+2 {
		return fmt.Errorf("%w: want %d questions, got %d", ErrInvalidBank, b.scored+2, len(b.questions))
	}
	for i, q := range b.questions[:b.scored] {
		if q.Type != model.QuestionTypeScored {
			return fmt.Errorf("%w: question %d must be scored", ErrInvalidBank, i)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidBank, i, len(q.Options))
		}
		for j, o := range q.Options {
			if !o.Driver.Valid() {
				return fmt.Errorf("%w: question %d option %d has driver %q", ErrInvalidBank, i, j, o.Driver)
			}
			if o.Score <= 0 {
				return fmt.Errorf("%w: question %d option %d has no score", ErrInvalidBank, i, j)
			}
		}
	}
	if b.questions[b.scored].Type != model.QuestionTypeDate || b.questions[b.scored].Domain != model.DomainBirthDate {
		return fmt.Errorf("%w: question %d must be the birth date", ErrInvalidBank, b.scored)
	}
	status := b.questions[b.scored+1]
	if status.Type != model.QuestionTypeChoice || status.Domain != model.DomainRelationshipStatus {
		return fmt.Errorf("%w: question %d must be the relationship status", ErrInvalidBank, b.scored+1)
	}
	for j, o := range status.Options {
		if o.Value == "" || o.Driver != "" {
			return fmt.Errorf("%w: relationship option %d must carry a value and no driver", ErrInvalidBank, j)
		}
	}
	return nil
}

func (b *Bank) Version() string { return b.version }

// Len is the total number of questions, scored and unscored
func (b *Bank) Len() int { return len(b.questions) }

// ScoredCount is the number of leading scored questions
func (b *Bank) ScoredCount() int { return b.scored }

// Question returns the question at position i
func (b *Bank) Question(i int) (model.Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return model.Question{}, false
	}
	return b.questions[i], true
}

// Questions returns a copy of every question
func (b *Bank) Questions() []model.Question {
	out := make([]model.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// BirthDateIndex is the position of the free-text birth date question
func (b *Bank) BirthDateIndex() int { return b.scored }

// RelationshipIndex is the position of the relationship status question
func (b *Bank) RelationshipIndex() int { return b.scored + 1 }

// MaxScore is the highest total reachable by answering every scored question
func (b *Bank) MaxScore() int {
	total := 0
	for _, q := range b.questions[:min(b.scored, len(b.questions))] {
		best := 0
		for _, o := range q.Options {
			if o.Scored() && o.Score > best {
				best = o.Score
			}
		}
		total += best
	}
	return total
}
