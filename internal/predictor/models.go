package predictor

import (
	"fmt"
	"strings"
)

// Region identifiers used by the API.
const (
	RegionCN = "CN"
	RegionUS = "US"
)

// Contest is a single predicted contest.
type Contest struct {
	TitleSlug   string `json:"titleSlug"`
	Title       string `json:"title"`
	StartTime   Time   `json:"startTime"`
	PredictTime Time   `json:"predict_time"`
	UserNumUS   *int   `json:"user_num_us,omitempty"`
	UserNumCN   *int   `json:"user_num_cn,omitempty"`
}

// Predicted reports whether the contest has finished prediction.
func (c Contest) Predicted() bool {
	return !c.PredictTime.IsZero() && c.PredictTime.Year() > 1970
}

// OfficialRankingURL returns the contest ranking page for the region.
func (c Contest) OfficialRankingURL(region string) string {
	return RankingURL(c.TitleSlug, region)
}

// RankingURL returns the official ranking page of a contest in a region.
func RankingURL(slug, region string) string {
	if strings.EqualFold(region, RegionCN) {
		return fmt.Sprintf("https://leetcode.cn/contest/%s/ranking", slug)
	}
	return fmt.Sprintf("https://leetcode.com/contest/%s/ranking", slug)
}

// ContestUserNum holds per-region entrant counts of one contest.
type ContestUserNum struct {
	TitleSlug string `json:"titleSlug"`
	Title     string `json:"title"`
	StartTime Time   `json:"startTime"`
	UserNumUS int    `json:"user_num_us"`
	UserNumCN int    `json:"user_num_cn"`
}

// Total returns the combined number of entrants.
func (c ContestUserNum) Total() int {
	return c.UserNumUS + c.UserNumCN
}

// Record is one user's predicted contest result.
type Record struct {
	ContestName           string   `json:"contest_name"`
	Username              string   `json:"username"`
	DataRegion            string   `json:"data_region"`
	CountryName           string   `json:"country_name,omitempty"`
	Rank                  int      `json:"rank"`
	Score                 int      `json:"score"`
	FinishTime            Time     `json:"finish_time"`
	OldRating             *float64 `json:"old_rating"`
	NewRating             *float64 `json:"new_rating"`
	DeltaRating           *float64 `json:"delta_rating"`
	AttendedContestsCount *int     `json:"attendedContestsCount,omitempty"`
}

// Key returns the unique user key of the record.
func (r Record) Key() UserKey {
	return UserKey{Username: r.Username, DataRegion: r.DataRegion}
}

// Rating returns the rating triple of the record.
func (r Record) Rating() Rating {
	return Rating{Old: r.OldRating, New: r.NewRating, Delta: r.DeltaRating}
}

// Question is one contest problem with per-minute accepted counts.
type Question struct {
	QuestionID    int    `json:"question_id"`
	Credit        int    `json:"credit"`
	Title         string `json:"title"`
	TitleSlug     string `json:"title_slug"`
	QI            int    `json:"qi"`
	ContestName   string `json:"contest_name"`
	RealTimeCount []int  `json:"real_time_count"`
}

// UserKey identifies a user across regions.
type UserKey struct {
	Username   string `json:"username"`
	DataRegion string `json:"data_region"`
}

// Validate checks the key is complete and the region known.
func (k UserKey) Validate() error {
	if strings.TrimSpace(k.Username) == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidArgument)
	}
	switch k.DataRegion {
	case RegionCN, RegionUS:
		return nil
	default:
		return fmt.Errorf("%w: unknown region %q", ErrInvalidArgument, k.DataRegion)
	}
}

// Rating is an old/new/delta rating triple. Fields are nil until predicted.
type Rating struct {
	Old   *float64 `json:"old_rating"`
	New   *float64 `json:"new_rating"`
	Delta *float64 `json:"delta_rating"`
}

// Known reports whether the prediction is available.
func (r Rating) Known() bool {
	return r.Old != nil && r.New != nil && r.Delta != nil
}

// Entry is a synthetic contest result for what-if predictions.
type Entry struct {
	ContestName string `json:"contest_name"`
	Username    string `json:"username"`
	DataRegion  string `json:"data_region"`
	Rank        int    `json:"rank"`
	Score       int    `json:"score"`
	FinishTime  Time   `json:"finish_time"`
}
