package assessment

import "math"

type GradeResult struct {
	ScorePoints int
	MaxPoints   int
	Percentage  float64
	Correct     int
	Answered    int
}

// Grade scores answers against the question bank. Letters compare
// case-insensitively, answers to unknown question ids are ignored and an
// empty bank grades to 0%.
func Grade(questions []Question, answers Answers) GradeResult {
	var res GradeResult
	for _, q := range questions {
		if q.Points > 0 {
			res.MaxPoints += q.Points
		}

		given, ok := answers[q.ID]
		if !ok {
			continue
		}
		res.Answered++

		letter, valid := NormalizeLetter(given)
		if !valid {
			continue
		}
		correct, _ := NormalizeLetter(q.CorrectOption)
		if letter == correct && q.Points > 0 {
			res.ScorePoints += q.Points
			res.Correct++
		}
	}

	if res.MaxPoints > 0 {
		pct := float64(res.ScorePoints) / float64(res.MaxPoints) * 100
		res.Percentage = math.Round(pct*100) / 100
	}
	return res
}
