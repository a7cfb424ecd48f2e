package predictor

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Records fetches predicted records of a contest ordered by rank.
func (c *Client) Records(ctx context.Context, contest string, skip, limit int) ([]Record, error) {
	if err := checkContest(contest); err != nil {
		return nil, err
	}
	if skip < 0 || limit < 1 {
		return nil, fmt.Errorf("%w: skip=%d limit=%d", ErrInvalidArgument, skip, limit)
	}
	query := url.Values{}
	query.Set("contest_name", contest)
	query.Set("archived", "false")
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var records []Record
	if err := c.get(ctx, "/contest-records/", query, &records); err != nil {
		return nil, fmt.Errorf("fetch records of %s: %w", contest, err)
	}
	return records, nil
}

// RecordsCount counts predicted records of a contest.
func (c *Client) RecordsCount(ctx context.Context, contest string) (int, error) {
	if err := checkContest(contest); err != nil {
		return 0, err
	}
	query := url.Values{}
	query.Set("contest_name", contest)
	query.Set("archived", "false")

	var count int
	if err := c.get(ctx, "/contest-records/count", query, &count); err != nil {
		return 0, fmt.Errorf("count records of %s: %w", contest, err)
	}
	return count, nil
}

// UserRecords fetches the records of one username in a contest.
func (c *Client) UserRecords(ctx context.Context, contest, username string) ([]Record, error) {
	if err := checkContest(contest); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: empty username", ErrInvalidArgument)
	}
	query := url.Values{}
	query.Set("contest_name", contest)
	query.Set("username", username)

	var records []Record
	if err := c.get(ctx, "/contest-records/user", query, &records); err != nil {
		return nil, fmt.Errorf("search %q in %s: %w", username, contest, err)
	}
	return records, nil
}

// RealTimeRank fetches a user's per-minute rank during a contest.
// A user without rank history yields an empty slice.
func (c *Client) RealTimeRank(ctx context.Context, contest string, user UserKey) ([]float64, error) {
	if err := checkContest(contest); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	payload := struct {
		ContestName string  `json:"contest_name"`
		User        UserKey `json:"user"`
	}{contest, user}

	var result *struct {
		RealTimeRank []float64 `json:"real_time_rank"`
	}
	if err := c.post(ctx, "/contest-records/real-time-rank", payload, &result); err != nil {
		return nil, fmt.Errorf("fetch real time rank of %s: %w", user.Username, err)
	}
	if result == nil || result.RealTimeRank == nil {
		return []float64{}, nil
	}
	return result.RealTimeRank, nil
}

// PredictedRating fetches predictions for 1 to 26 users.
func (c *Client) PredictedRating(ctx context.Context, contest string, users []UserKey) ([]*Rating, error) {
	if err := checkContest(contest); err != nil {
		return nil, err
	}
	if len(users) == 0 || len(users) > MaxPredictedUsers {
		return nil, fmt.Errorf("%w: %d users, want 1..%d", ErrInvalidArgument, len(users), MaxPredictedUsers)
	}
	for _, user := range users {
		if err := user.Validate(); err != nil {
			return nil, err
		}
	}
	payload := struct {
		ContestName string    `json:"contest_name"`
		Users       []UserKey `json:"users"`
	}{contest, users}

	var ratings []*Rating
	if err := c.post(ctx, "/contest-records/predicted-rating", payload, &ratings); err != nil {
		return nil, fmt.Errorf("fetch predicted rating: %w", err)
	}
	return ratings, nil
}

// HypotheticalEntry predicts the rating change of a synthetic result.
func (c *Client) HypotheticalEntry(ctx context.Context, entry Entry) (Rating, error) {
	if err := checkContest(entry.ContestName); err != nil {
		return Rating{}, err
	}
	if err := (UserKey{Username: entry.Username, DataRegion: entry.DataRegion}).Validate(); err != nil {
		return Rating{}, err
	}
	if entry.Rank < 1 {
		return Rating{}, fmt.Errorf("%w: rank %d", ErrInvalidArgument, entry.Rank)
	}

	var rating Rating
	if err := c.post(ctx, "/contest-records/hypothetical", entry, &rating); err != nil {
		return Rating{}, fmt.Errorf("predict hypothetical entry: %w", err)
	}
	return rating, nil
}

func checkContest(contest string) error {
	if strings.TrimSpace(contest) == "" {
		return fmt.Errorf("%w: empty contest name", ErrInvalidArgument)
	}
	return nil
}
