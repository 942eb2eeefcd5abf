package quiz

// Question is a single multiple-choice question. Questions are immutable
// while a drill is running; a question belongs to exactly one test.
type Question struct {
	// ID is stable and unique within the owning test.
	ID int

	// Tag is the free-form topic label used for coverage balancing.
	Tag string

	// Text is the question prompt.
	Text string

	// Options holds the answer choices, two or more.
	Options []string

	// AnswerIndex is the 0-based index of the correct option.
	AnswerIndex int

	// Explanation is shown after answering. May be empty.
	Explanation string
}

// AnswerStat aggregates a user's historical results for one question.
// A missing stat is a valid state: the question was never answered.
type AnswerStat struct {
	Correct int
	Wrong   int
}

// WrongRef identifies a question answered incorrectly in some session.
type WrongRef struct {
	TestID     string
	QuestionID int
}
