package performance

import (
	"math"

	"ems/internal/platform/validation"
)

func (in Input) Validate() error {
	return validation.Struct(in)
}

func (u Update) Validate() error {
	return validation.Struct(u)
}

// UpdateFrom copies the editable fields of an existing review.
func UpdateFrom(r Review) Update {
	return Update{
		Scores:   Scores{Productivity: r.Productivity, Communication: r.Communication, Teamwork: r.Teamwork, Punctuality: r.Punctuality},
		Reviewer: r.Reviewer,
		Comments: r.Comments,
	}
}

// FinalScore is the mean of the four sub-scores, rounded to two decimals
// and clamped to [0,5].
func FinalScore(s Scores) float64 {
	mean := float64(s.Productivity+s.Communication+s.Teamwork+s.Punctuality) / 4
	mean = math.Round(mean*100) / 100
	return math.Max(0, math.Min(MaxScore, mean))
}

// Average is the mean final score over reviews, 0 for none.
func Average(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range reviews {
		total += r.FinalScore
	}
	return math.Round(total/float64(len(reviews))*100) / 100
}
