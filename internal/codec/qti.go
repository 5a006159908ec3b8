package codec

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"authoring_console_backend/internal/model"
)

// The QTI-like subset is item-centric XML in the QTI 2.x style:
// assessmentItem, responseDeclaration, itemBody with choiceInteraction or
// extendedTextInteraction. Only multiple_choice, true_false and essay are
// representable; everything else is a per-record capability error.

type qtiContainer struct {
	XMLName xml.Name  `xml:"assessmentItems"`
	Items   []qtiItem `xml:"assessmentItem"`
}

type qtiItem struct {
	Identifier   string       `xml:"identifier,attr"`
	Title        string       `xml:"title,attr,omitempty"`
	ResponseDecl *qtiResponse `xml:"responseDeclaration"`
	OutcomeDecl  *qtiOutcome  `xml:"outcomeDeclaration"`
	Body         qtiBody      `xml:"itemBody"`
}

type qtiResponse struct {
	Identifier  string           `xml:"identifier,attr"`
	Cardinality string           `xml:"cardinality,attr"`
	BaseType    string           `xml:"baseType,attr"`
	Correct     qtiCorrectValues `xml:"correctResponse"`
}

type qtiCorrectValues struct {
	Values []string `xml:"value"`
}

type qtiOutcome struct {
	Identifier string          `xml:"identifier,attr"`
	Default    qtiDefaultValue `xml:"defaultValue"`
}

type qtiDefaultValue struct {
	Value string `xml:"value"`
}

type qtiBody struct {
	Prompt   string           `xml:"prompt"`
	Choice   *qtiChoice       `xml:"choiceInteraction"`
	Extended *qtiExtendedText `xml:"extendedTextInteraction"`
}

type qtiChoice struct {
	ResponseIdentifier string            `xml:"responseIdentifier,attr"`
	MaxChoices         int               `xml:"maxChoices,attr"`
	Choices            []qtiSimpleChoice `xml:"simpleChoice"`
}

type qtiSimpleChoice struct {
	Identifier string `xml:"identifier,attr"`
	Label      string `xml:",chardata"`
}

type qtiExtendedText struct {
	ResponseIdentifier string `xml:"responseIdentifier,attr"`
	ExpectedLength     int    `xml:"expectedLength,attr,omitempty"`
}

const responseID = "RESPONSE"

func exportQuestionsQTI(questions []model.Question) ([]byte, []FormatError, error) {
	container := qtiContainer{}
	var errs []FormatError
	for i := range questions {
		item, err := itemFromQuestion(&questions[i])
		if err != nil {
			errs = append(errs, FormatError{RecordIndex: i, Reason: err.Error(), Err: err})
			continue
		}
		container.Items = append(container.Items, item)
	}

	body, err := xml.MarshalIndent(container, "", "  ")
	if err != nil {
		return nil, errs, err
	}
	return append([]byte(xml.Header), body...), errs, nil
}

func itemFromQuestion(q *model.Question) (qtiItem, error) {
	item := qtiItem{
		Identifier:  q.ID,
		Title:       q.Content.Instructions,
		OutcomeDecl: &qtiOutcome{Identifier: "SCORE", Default: qtiDefaultValue{Value: strconv.Itoa(q.Points)}},
		Body:        qtiBody{Prompt: q.Content.Text},
	}

	switch q.Type {
	case model.MultipleChoice:
		choice := &qtiChoice{ResponseIdentifier: responseID, MaxChoices: 1}
		var correct []string
		for _, opt := range q.Options {
			choice.Choices = append(choice.Choices, qtiSimpleChoice{Identifier: opt.ID, Label: opt.Text})
			if opt.IsCorrect {
				correct = append(correct, opt.ID)
			}
		}
		cardinality := "single"
		if len(correct) > 1 {
			cardinality = "multiple"
			choice.MaxChoices = 0
		}
		item.Body.Choice = choice
		item.ResponseDecl = &qtiResponse{
			Identifier:  responseID,
			Cardinality: cardinality,
			BaseType:    "identifier",
			Correct:     qtiCorrectValues{Values: correct},
		}

	case model.TrueFalse:
		value := "false"
		if q.CorrectAnswer != nil && q.CorrectAnswer.Bool {
			value = "true"
		}
		item.ResponseDecl = &qtiResponse{
			Identifier:  responseID,
			Cardinality: "single",
			BaseType:    "boolean",
			Correct:     qtiCorrectValues{Values: []string{value}},
		}

	case model.Essay:
		ext := &qtiExtendedText{ResponseIdentifier: responseID}
		if limit, ok := q.Metadata["wordLimit"].(float64); ok {
			ext.ExpectedLength = int(limit)
		} else if limit, ok := q.Metadata["wordLimit"].(int); ok {
			ext.ExpectedLength = limit
		}
		item.Body.Extended = ext

	default:
		return qtiItem{}, &UnsupportedTypeError{Type: q.Type}
	}
	return item, nil
}

func parseQuestionCandidatesQTI(data []byte) ([]candidate, []FormatError, error) {
	var container qtiContainer
	if err := xml.Unmarshal(data, &container); err != nil {
		return nil, nil, &ContainerParseError{Format: FormatQTI, Err: err}
	}

	var cands []candidate
	var errs []FormatError
	for i, item := range container.Items {
		q, err := questionFromItem(item)
		if err != nil {
			errs = append(errs, FormatError{RecordIndex: i, Reason: err.Error(), Err: err})
			continue
		}
		cands = append(cands, candidate{index: i, question: q})
	}
	return cands, errs, nil
}

func questionFromItem(item qtiItem) (model.Question, error) {
	q := model.Question{
		Content: model.QuestionContent{
			Text:         item.Body.Prompt,
			Instructions: item.Title,
		},
		Points: 1,
	}
	q.ID = item.Identifier
	if item.OutcomeDecl != nil {
		if pts, err := strconv.Atoi(item.OutcomeDecl.Default.Value); err == nil && pts > 0 {
			q.Points = pts
		}
	}

	switch {
	case item.Body.Extended != nil:
		q.Type = model.Essay
		if item.Body.Extended.ExpectedLength > 0 {
			q.Metadata = map[string]any{"wordLimit": float64(item.Body.Extended.ExpectedLength)}
		}

	case item.ResponseDecl != nil && item.ResponseDecl.BaseType == "boolean":
		q.Type = model.TrueFalse
		if len(item.ResponseDecl.Correct.Values) == 0 {
			return model.Question{}, fmt.Errorf("boolean item %q has no correct response", item.Identifier)
		}
		v, err := strconv.ParseBool(item.ResponseDecl.Correct.Values[0])
		if err != nil {
			return model.Question{}, fmt.Errorf("boolean item %q has correct response %q", item.Identifier, item.ResponseDecl.Correct.Values[0])
		}
		q.CorrectAnswer = model.BoolAnswer(v)

	case item.Body.Choice != nil && item.ResponseDecl != nil:
		q.Type = model.MultipleChoice
		correct := make(map[string]bool, len(item.ResponseDecl.Correct.Values))
		for _, v := range item.ResponseDecl.Correct.Values {
			correct[v] = true
		}
		for _, c := range item.Body.Choice.Choices {
			q.Options = append(q.Options, model.Option{
				ID:        c.Identifier,
				Text:      c.Label,
				IsCorrect: correct[c.Identifier],
			})
		}

	default:
		return model.Question{}, &UnsupportedTypeError{Type: "unrecognized_item_shape"}
	}
	return q, nil
}
