package predictor

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Contests fetches predicted contests, newest first.
func (c *Client) Contests(ctx context.Context, skip, limit int) ([]Contest, error) {
	if skip < 0 || limit < 1 {
		return nil, fmt.Errorf("%w: skip=%d limit=%d", ErrInvalidArgument, skip, limit)
	}
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var contests []Contest
	if err := c.get(ctx, "/contests/", query, &contests); err != nil {
		return nil, fmt.Errorf("fetch contests: %w", err)
	}
	return contests, nil
}

// ContestsCount counts predicted contests.
func (c *Client) ContestsCount(ctx context.Context) (int, error) {
	var count int
	if err := c.get(ctx, "/contests/count", nil, &count); err != nil {
		return 0, fmt.Errorf("count contests: %w", err)
	}
	return count, nil
}

// ContestsUserNum fetches entrant counts for the last ten contests.
func (c *Client) ContestsUserNum(ctx context.Context) ([]ContestUserNum, error) {
	var nums []ContestUserNum
	if err := c.get(ctx, "/contests/user-num-last-ten", nil, &nums); err != nil {
		return nil, fmt.Errorf("fetch contest entrants: %w", err)
	}
	return nums, nil
}
