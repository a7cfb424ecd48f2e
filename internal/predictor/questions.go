package predictor

import (
	"context"
	"fmt"
)

// Questions fetches the questions of a contest.
func (c *Client) Questions(ctx context.Context, contest string) ([]Question, error) {
	if err := checkContest(contest); err != nil {
		return nil, err
	}
	payload := struct {
		ContestName string `json:"contest_name"`
	}{contest}

	var questions []Question
	if err := c.post(ctx, "/questions/", payload, &questions); err != nil {
		return nil, fmt.Errorf("fetch questions of %s: %w", contest, err)
	}
	return questions, nil
}
