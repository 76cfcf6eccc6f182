package services

import (
	"encoding/json"
	"testing"
	"time"
)

var answeredAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScaleQuestionBounds(t *testing.T) {
	q := ScaleQuestion{questionBase{"q1", "", true, "transparency"}, 1, 10}

	resp, err := q.Answer(json.RawMessage(`7`), answeredAt)
	if err != nil {
		t.Fatalf("valid scale answer: %v", err)
	}
	if resp.Scale != 7 || resp.QuestionID != "q1" {
		t.Fatalf("response = %+v", resp)
	}

	for _, raw := range []string{`0`, `11`, `7.5`, `"seven"`} {
		if _, err := q.Answer(json.RawMessage(raw), answeredAt); err == nil {
			t.Fatalf("accepted %s", raw)
		}
	}
}

func TestMultipleChoiceQuestion(t *testing.T) {
	q := MultipleChoiceQuestion{questionBase{"q2", "", true, "transparency"}, []string{"Always", "Never"}}

	resp, err := q.Answer(json.RawMessage(`"Always"`), answeredAt)
	if err != nil {
		t.Fatalf("valid choice: %v", err)
	}
	if resp.Text != "Always" {
		t.Fatalf("response = %+v", resp)
	}
	if _, err := q.Answer(json.RawMessage(`"Maybe"`), answeredAt); err == nil {
		t.Fatal("accepted an unoffered choice")
	}
	if _, err := q.Answer(json.RawMessage(`3`), answeredAt); err == nil {
		t.Fatal("accepted a numeric payload")
	}
}

func TestTextQuestion(t *testing.T) {
	q := TextQuestion{questionBase{"q6", "", false, "transparency"}, 10}

	resp, err := q.Answer(json.RawMessage(`"  brief  "`), answeredAt)
	if err != nil {
		t.Fatalf("valid text: %v", err)
	}
	if resp.Text != "brief" {
		t.Fatalf("text not trimmed: %q", resp.Text)
	}
	if _, err := q.Answer(json.RawMessage(`"   "`), answeredAt); err == nil {
		t.Fatal("accepted blank text")
	}
	if _, err := q.Answer(json.RawMessage(`"this answer is far too long"`), answeredAt); err == nil {
		t.Fatal("accepted over-length text")
	}
}

func TestValidateSurveyAnswers(t *testing.T) {
	full := fullSurveyAnswers()

	responses, err := ValidateSurveyAnswers(full, answeredAt)
	if err != nil {
		t.Fatalf("full submission: %v", err)
	}
	if len(responses) != 5 {
		t.Fatalf("got %d responses", len(responses))
	}
	for _, r := range responses {
		if !r.SubmittedAt.Equal(answeredAt) {
			t.Fatalf("timestamps differ: %+v", r)
		}
	}

	// Optional q6 may be included.
	withText := append(fullSurveyAnswers(), SurveyAnswer{QuestionID: "q6", Value: json.RawMessage(`"more openness"`)})
	if _, err := ValidateSurveyAnswers(withText, answeredAt); err != nil {
		t.Fatalf("with optional answer: %v", err)
	}

	cases := []struct {
		name    string
		answers []SurveyAnswer
	}{
		{"unknown question", append(fullSurveyAnswers(), SurveyAnswer{QuestionID: "q99", Value: json.RawMessage(`1`)})},
		{"duplicate answer", append(fullSurveyAnswers(), SurveyAnswer{QuestionID: "q1", Value: json.RawMessage(`5`)})},
		{"missing required", fullSurveyAnswers()[:3]},
	}
	for _, tc := range cases {
		if _, err := ValidateSurveyAnswers(tc.answers, answeredAt); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestSurveyCatalogShape(t *testing.T) {
	catalog := SurveyQuestions()
	if len(catalog) != 6 {
		t.Fatalf("catalog has %d questions", len(catalog))
	}
	required := 0
	for _, q := range catalog {
		if q.Required() {
			required++
		}
	}
	if required != 5 {
		t.Fatalf("%d required questions, want 5", required)
	}
}
