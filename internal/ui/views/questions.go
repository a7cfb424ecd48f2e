package views

import (
	"context"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/reshape"
)

// NewQuestions creates the question finished chart of a contest.
func NewQuestions(client predictor.API, contest string) *Chart {
	return newChart("Questions", contest, reshape.QuestionFinished, func(ctx context.Context) ([]reshape.Entity, error) {
		questions, err := client.Questions(ctx, contest)
		if err != nil {
			return nil, err
		}
		return QuestionEntities(questions), nil
	})
}

// QuestionEntities orders questions by credit, then ordinal, and
// exposes their per-minute accepted counts.
func QuestionEntities(questions []predictor.Question) []reshape.Entity {
	entities := make([]reshape.Entity, 0, len(questions))
	for _, q := range questions {
		samples := make([]float64, len(q.RealTimeCount))
		for i, count := range q.RealTimeCount {
			samples[i] = float64(count)
		}
		entities = append(entities, reshape.Entity{
			SortKey:     float64(q.Credit),
			TieBreakKey: float64(q.QI),
			Label:       q.Title,
			Samples:     samples,
		})
	}
	return entities
}
