package predictor

import (
	"context"
	"errors"
)

// MaxPredictedUsers bounds a single predicted-rating query.
const MaxPredictedUsers = 26

// ErrInvalidArgument is returned for requests rejected before sending.
var ErrInvalidArgument = errors.New("invalid argument")

// API defines the read operations of the prediction service.
// This interface enables mocking the client for testing purposes.
type API interface {
	// Close releases resources held by the client.
	Close() error

	// DisplayBaseURL returns a sanitized URL safe for display.
	DisplayBaseURL() string

	// Contests fetches predicted contests, newest first.
	Contests(ctx context.Context, skip, limit int) ([]Contest, error)

	// ContestsCount counts predicted contests.
	ContestsCount(ctx context.Context) (int, error)

	// ContestsUserNum fetches entrant counts for the last ten contests.
	ContestsUserNum(ctx context.Context) ([]ContestUserNum, error)

	// Records fetches predicted records of a contest ordered by rank.
	Records(ctx context.Context, contest string, skip, limit int) ([]Record, error)

	// RecordsCount counts predicted records of a contest.
	RecordsCount(ctx context.Context, contest string) (int, error)

	// UserRecords fetches the records of one username in a contest.
	UserRecords(ctx context.Context, contest, username string) ([]Record, error)

	// Questions fetches the questions of a contest.
	Questions(ctx context.Context, contest string) ([]Question, error)

	// RealTimeRank fetches a user's per-minute rank during a contest.
	RealTimeRank(ctx context.Context, contest string, user UserKey) ([]float64, error)

	// PredictedRating fetches predictions for up to 26 users.
	// Users without a prediction yield a nil entry.
	PredictedRating(ctx context.Context, contest string, users []UserKey) ([]*Rating, error)

	// HypotheticalEntry predicts the rating change of a synthetic result.
	HypotheticalEntry(ctx context.Context, entry Entry) (Rating, error)
}

var _ API = (*Client)(nil)
