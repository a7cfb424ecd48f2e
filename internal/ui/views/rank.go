package views

import (
	"context"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/reshape"
)

// NewRank creates the real-time rank chart of one user in a contest.
func NewRank(client predictor.API, contest string, record predictor.Record) *Chart {
	user := record.Key()
	return newChart("Rank", user.Username, reshape.RealTimeRank, func(ctx context.Context) ([]reshape.Entity, error) {
		ranks, err := client.RealTimeRank(ctx, contest, user)
		if err != nil {
			return nil, err
		}
		return rankEntities(user.Username, ranks), nil
	})
}

// rankEntities plots a single user.
func rankEntities(username string, ranks []float64) []reshape.Entity {
	return []reshape.Entity{{Label: username, Samples: ranks}}
}
