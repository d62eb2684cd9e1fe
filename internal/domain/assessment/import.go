package assessment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImportItem is one entry of an admin question upload.
type ImportItem struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
	Points  *int     `json:"points"`
}

type ImportIssue struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ParseImport decodes a JSON array of questions. Entries that fail
// validation are reported as issues and left out; only a payload that is not
// a JSON array fails as a whole.
func ParseImport(raw []byte) ([]Question, []ImportIssue, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	questions := make([]Question, 0, len(entries))
	issues := make([]ImportIssue, 0)
	for i, e := range entries {
		var it ImportItem
		if err := json.Unmarshal(e, &it); err != nil {
			issues = append(issues, ImportIssue{Index: i, Reason: "not a question object"})
			continue
		}
		q, reason := it.toQuestion()
		if reason != "" {
			issues = append(issues, ImportIssue{Index: i, Reason: reason})
			continue
		}
		q.Order = len(questions) + 1
		questions = append(questions, q)
	}
	return questions, issues, nil
}

func (it ImportItem) toQuestion() (Question, string) {
	text := strings.TrimSpace(it.Text)
	if text == "" {
		return Question{}, "missing text"
	}
	if len(it.Options) < 4 {
		return Question{}, "fewer than four options"
	}
	opts := make([]string, 4)
	for i := 0; i < 4; i++ {
		opts[i] = strings.TrimSpace(it.Options[i])
		if opts[i] == "" {
			return Question{}, fmt.Sprintf("option %s is empty", letters[i])
		}
	}
	letter, ok := NormalizeLetter(it.Correct)
	if !ok {
		return Question{}, "invalid correct letter"
	}
	points := 1
	if it.Points != nil {
		points = *it.Points
	}
	if points <= 0 {
		return Question{}, "points must be positive"
	}

	return Question{
		Text:          text,
		OptionA:       opts[0],
		OptionB:       opts[1],
		OptionC:       opts[2],
		OptionD:       opts[3],
		CorrectOption: letter,
		Points:        points,
	}, ""
}
