package domain

import "authoring_console_backend/internal/model"

type OptionsRule int

const (
	OptionsForbidden OptionsRule = iota
	OptionsRequired
)

type AnswerShape int

const (
	// AnswerIgnored: correctness lives elsewhere (option flags) or does not
	// apply to the type at all.
	AnswerIgnored AnswerShape = iota
	AnswerBoolean
	AnswerTextList
)

// Contract is the declarative half of a question type's structural rules.
// Cross-field rules that a table cannot express (correct-option counts,
// matching pairs, metadata keys) live in the validator's per-type branch.
type Contract struct {
	Options    OptionsRule
	MinOptions int
	Answer     AnswerShape
}

// contracts maps every supported type tag to its contract. Adding a type is
// one row here plus one branch in validateTypeRules.
var contracts = map[model.QuestionType]Contract{
	model.MultipleChoice: {Options: OptionsRequired, MinOptions: 2, Answer: AnswerIgnored},
	model.TrueFalse:      {Options: OptionsForbidden, Answer: AnswerBoolean},
	model.Essay:          {Options: OptionsForbidden, Answer: AnswerIgnored},
	model.FillInBlank:    {Options: OptionsForbidden, Answer: AnswerTextList},
	model.CodeSubmission: {Options: OptionsForbidden, Answer: AnswerIgnored},
	model.FileUpload:     {Options: OptionsForbidden, Answer: AnswerIgnored},
	model.Matching:       {Options: OptionsRequired, MinOptions: 2, Answer: AnswerIgnored},
	model.Ordering:       {Options: OptionsRequired, MinOptions: 2, Answer: AnswerIgnored},
}

// ContractFor looks up the structural contract for a type tag.
func ContractFor(t model.QuestionType) (Contract, bool) {
	c, ok := contracts[t]
	return c, ok
}

// KnownTypes lists the supported type tags in a stable order.
func KnownTypes() []model.QuestionType {
	return []model.QuestionType{
		model.MultipleChoice,
		model.TrueFalse,
		model.Essay,
		model.FillInBlank,
		model.CodeSubmission,
		model.FileUpload,
		model.Matching,
		model.Ordering,
	}
}
