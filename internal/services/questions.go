package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// SurveyQuestion is one entry in the fixed survey catalog. Each question
// type carries its own payload shape and validates answers for itself, so a
// new type cannot be added without deciding how it validates.
type SurveyQuestion interface {
	ID() string
	Prompt() string
	Required() bool
	Category() string

	// Answer validates a raw JSON answer and converts it into a stored
	// response. The raw payload is a JSON number for scale questions and a
	// JSON string otherwise.
	Answer(raw json.RawMessage, at time.Time) (models.SurveyResponse, error)
}

type questionBase struct {
	QID  string
	Text string
	Req  bool
	Cat  string
}

func (q questionBase) ID() string       { return q.QID }
func (q questionBase) Prompt() string   { return q.Text }
func (q questionBase) Required() bool   { return q.Req }
func (q questionBase) Category() string { return q.Cat }

// ScaleQuestion accepts an integer rating in [Min, Max].
type ScaleQuestion struct {
	questionBase
	Min, Max int
}

func (q ScaleQuestion) Answer(raw json.RawMessage, at time.Time) (models.SurveyResponse, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s expects a numeric answer", q.QID))
	}
	n := int(v)
	if float64(n) != v || n < q.Min || n > q.Max {
		return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s expects an integer between %d and %d", q.QID, q.Min, q.Max))
	}
	return models.SurveyResponse{QuestionID: q.QID, Scale: n, SubmittedAt: at}, nil
}

// MultipleChoiceQuestion accepts exactly one of its configured options.
type MultipleChoiceQuestion struct {
	questionBase
	Options []string
}

func (q MultipleChoiceQuestion) Answer(raw json.RawMessage, at time.Time) (models.SurveyResponse, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s expects a string answer", q.QID))
	}
	for _, opt := range q.Options {
		if opt == s {
			return models.SurveyResponse{QuestionID: q.QID, Text: s, SubmittedAt: at}, nil
		}
	}
	return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s: %q is not one of the offered choices", q.QID, s))
}

// TextQuestion accepts free text; blank counts as unanswered.
type TextQuestion struct {
	questionBase
	MaxLen int
}

func (q TextQuestion) Answer(raw json.RawMessage, at time.Time) (models.SurveyResponse, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s expects a string answer", q.QID))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s: answer is empty", q.QID))
	}
	if q.MaxLen > 0 && len(s) > q.MaxLen {
		return models.SurveyResponse{}, NewInvalidError(fmt.Sprintf("question %s: answer exceeds %d characters", q.QID, q.MaxLen))
	}
	return models.SurveyResponse{QuestionID: q.QID, Text: s, SubmittedAt: at}, nil
}

// SurveyQuestions is the transparency survey catalog. It is defined once and
// never mutated at runtime.
func SurveyQuestions() []SurveyQuestion {
	return []SurveyQuestion{
		ScaleQuestion{questionBase{"q1", "How transparent is your company about its financial performance?", true, "transparency"}, 1, 10},
		MultipleChoiceQuestion{questionBase{"q2", "Does your company openly share information about decision-making processes?", true, "transparency"},
			[]string{"Always", "Often", "Sometimes", "Rarely", "Never"}},
		ScaleQuestion{questionBase{"q3", "How would you rate your company's commitment to ethical business practices?", true, "ethics"}, 1, 10},
		MultipleChoiceQuestion{questionBase{"q4", "Does your company encourage open communication and feedback?", true, "culture"},
			[]string{"Strongly agree", "Agree", "Neutral", "Disagree", "Strongly disagree"}},
		ScaleQuestion{questionBase{"q5", "How accessible are senior leaders for direct communication?", true, "leadership"}, 1, 10},
		TextQuestion{questionBase{"q6", "What specific improvements would you like to see in your company's transparency?", false, "transparency"}, 2000},
	}
}

// SurveyAnswer mirrors one inbound answer before validation.
type SurveyAnswer struct {
	QuestionID string          `json:"question_id"`
	Value      json.RawMessage `json:"value"`
}

// ValidateSurveyAnswers checks a full submission against the catalog: every
// answer must match a known question and its payload shape, and every
// required question must be answered. The returned responses share one
// submission timestamp.
func ValidateSurveyAnswers(answers []SurveyAnswer, at time.Time) ([]models.SurveyResponse, error) {
	catalog := SurveyQuestions()
	byID := make(map[string]SurveyQuestion, len(catalog))
	for _, q := range catalog {
		byID[q.ID()] = q
	}

	answered := map[string]bool{}
	responses := make([]models.SurveyResponse, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, NewInvalidError(fmt.Sprintf("unknown question %q", a.QuestionID))
		}
		if answered[a.QuestionID] {
			return nil, NewInvalidError(fmt.Sprintf("question %s answered twice", a.QuestionID))
		}
		resp, err := q.Answer(a.Value, at)
		if err != nil {
			return nil, err
		}
		answered[a.QuestionID] = true
		responses = append(responses, resp)
	}

	for _, q := range catalog {
		if q.Required() && !answered[q.ID()] {
			return nil, NewInvalidError(fmt.Sprintf("required question %s is unanswered", q.ID()))
		}
	}
	return responses, nil
}
