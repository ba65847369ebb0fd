package model

// AnswerSet is index-aligned with the question bank. A nil entry means unanswered,
// otherwise it holds the chosen option index.
type AnswerSet []*int

// Get returns the option index chosen at position i
func (a AnswerSet) Get(i int) (int, bool) {
	if i < 0 || i >= len(a) || a[i] == nil {
		return 0, false
	}
	return *a[i], true
}

// With returns a copy of the set with position i set to option. The set grows as needed.
func (a AnswerSet) With(i, option int) AnswerSet {
	size := len(a)
	if i >= size {
		size = i + 1
	}
	out := make(AnswerSet, size)
	copy(out, a)
	v := option
	out[i] = &v
	return out
}

// Answered counts the positions holding a value below limit
func (a AnswerSet) Answered(limit int) int {
	n := 0
	for i, v := range a {
		if i >= limit {
			break
		}
		if v != nil {
			n++
		}
	}
	return n
}

// AnswersOf builds a dense answer set from plain option indexes. Negative values are left unanswered.
func AnswersOf(indexes ...int) AnswerSet {
	out := make(AnswerSet, len(indexes))
	for i, idx := range indexes {
		if idx < 0 {
			continue
		}
		v := idx
		out[i] = &v
	}
	return out
}
