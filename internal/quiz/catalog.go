package quiz

import "patternquiz/internal/model"

// Catalog holds the static display content for drivers and patterns
type Catalog struct {
	archetypes map[model.Driver]model.Archetype
	patterns   map[model.Pattern]model.PatternProfile
}

// Archetype returns the display identity for a driver
func (c *Catalog) Archetype(d model.Driver) (model.Archetype, bool) {
	a, ok := c.archetypes[d]
	return a, ok
}

// Pattern returns the descriptive profile for a pattern
func (c *Catalog) Pattern(p model.Pattern) (model.PatternProfile, bool) {
	pr, ok := c.patterns[p]
	return pr, ok
}

// Patterns returns every profile in canonical order
func (c *Catalog) Patterns() []model.PatternProfile {
	out := make([]model.PatternProfile, 0, len(model.Patterns))
	for _, p := range model.Patterns {
		if pr, ok := c.patterns[p]; ok {
			out = append(out, pr)
		}
	}
	return out
}

// NewCatalog returns the built-in archetype and pattern content
func NewCatalog() *Catalog {
	archetypes := []model.Archetype{
		{
			Driver:      model.DriverControl,
			Name:        "The Architect",
			Symbol:      "◆",
			Description: "You find safety in structure. When life feels uncertain, you reach for the wheel.",
		},
		{
			Driver:      model.DriverAvoidance,
			Name:        "The Drifter",
			Symbol:      "☁",
			Description: "You protect your peace by stepping away from what feels too heavy to hold.",
		},
		{
			Driver:      model.DriverValidation,
			Name:        "The Mirror",
			Symbol:      "✦",
			Description: "You measure yourself through the eyes of others and work hard to be seen well.",
		},
		{
			Driver:      model.DriverFearOfRejection,
			Name:        "The Guardian",
			Symbol:      "♥",
			Description: "Connection matters more than anything, so losing it feels like the greatest risk.",
		},
	}

	patterns := []model.PatternProfile{
		{
			Key:          model.PatternFixer,
			Driver:       model.DriverControl,
			Name:         "The Fixer",
			CoreBelief:   "If I don't handle it, it falls apart.",
			Strength:     "Decisive and dependable in a crisis.",
			Shadow:       "Takes over instead of letting others show up.",
			ResetFocus:   "Letting problems breathe before solving them.",
			Identity:     "You're the one everyone calls when something breaks.",
			CallToAction: "Practice asking before acting this week.",
		},
		{
			Key:          model.PatternPerfectionist,
			Driver:       model.DriverControl,
			Name:         "The Perfectionist",
			CoreBelief:   "If it isn't flawless, it isn't safe.",
			Strength:     "High standards and careful craft.",
			Shadow:       "Paralysis and self-criticism when outcomes slip.",
			ResetFocus:   "Choosing good enough on purpose.",
			Identity:     "You see every detail others miss.",
			CallToAction: "Ship one thing before it feels ready.",
		},
		{
			Key:          model.PatternEscaper,
			Driver:       model.DriverAvoidance,
			Name:         "The Escaper",
			CoreBelief:   "If I don't feel it, it can't hurt me.",
			Strength:     "Calm, easygoing, hard to rattle.",
			Shadow:       "Numbing and delay that let problems grow.",
			ResetFocus:   "Staying with discomfort for a few minutes longer.",
			Identity:     "You're the easy presence people relax around.",
			CallToAction: "Name one thing you've been putting off and start it today.",
		},
		{
			Key:          model.PatternOverthinker,
			Driver:       model.DriverAvoidance,
			Name:         "The Overthinker",
			CoreBelief:   "If I understand it fully, I'll be ready.",
			Strength:     "Deep insight and careful judgment.",
			Shadow:       "Analysis that replaces action.",
			ResetFocus:   "Acting on partial information.",
			Identity:     "You see every angle of a problem.",
			CallToAction: "Give your next decision a deadline.",
		},
		{
			Key:          model.PatternPleaser,
			Driver:       model.DriverValidation,
			Name:         "The Pleaser",
			CoreBelief:   "If they're happy with me, I'm okay.",
			Strength:     "Warm, attentive and generous.",
			Shadow:       "Losing yourself to keep the peace.",
			ResetFocus:   "Saying no without apologizing.",
			Identity:     "You make everyone around you feel cared for.",
			CallToAction: "Notice one moment this week when you say yes but mean no.",
		},
		{
			Key:          model.PatternPerformer,
			Driver:       model.DriverValidation,
			Name:         "The Performer",
			CoreBelief:   "I'm worth what I achieve.",
			Strength:     "Driven, ambitious and inspiring.",
			Shadow:       "Burnout chasing the next win.",
			ResetFocus:   "Separating who you are from what you do.",
			Identity:     "You light up every room you walk into.",
			CallToAction: "Celebrate something you did that nobody saw.",
		},
		{
			Key:          model.PatternGuardedOne,
			Driver:       model.DriverFearOfRejection,
			Name:         "The Guarded One",
			CoreBelief:   "If I don't let them in, they can't leave.",
			Strength:     "Self-reliant and perceptive.",
			Shadow:       "Walls that keep out the love you want.",
			ResetFocus:   "Letting one person see a little more.",
			Identity:     "You feel deeply and protect it fiercely.",
			CallToAction: "Share one honest feeling with someone you trust.",
		},
		{
			Key:          model.PatternOvergiver,
			Driver:       model.DriverFearOfRejection,
			Name:         "The Overgiver",
			CoreBelief:   "If I give enough, they'll stay.",
			Strength:     "Loyal, devoted and endlessly kind.",
			Shadow:       "Resentment and exhaustion from one-sided giving.",
			ResetFocus:   "Receiving without keeping score.",
			Identity:     "You love harder than anyone you know.",
			CallToAction: "Let someone do something for you this week.",
		},
	}

	c := &Catalog{
		archetypes: make(map[model.Driver]model.Archetype, len(archetypes)),
		patterns:   make(map[model.Pattern]model.PatternProfile, len(patterns)),
	}
	for _, a := range archetypes {
		c.archetypes[a.Driver] = a
	}
	for _, p := range patterns {
		c.patterns[p.Key] = p
	}
	return c
}
