package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
)

type stubAPI struct {
	mu sync.Mutex

	records   []predictor.Record
	questions []predictor.Question
	ratings   []*predictor.Rating
	rating    predictor.Rating
	err       error

	users   []predictor.UserKey
	entries []predictor.Entry
	skips   []int
}

var _ predictor.API = (*stubAPI)(nil)

func (s *stubAPI) Close() error           { return nil }
func (s *stubAPI) DisplayBaseURL() string { return "http://stub" }

func (s *stubAPI) Contests(context.Context, int, int) ([]predictor.Contest, error) {
	return nil, s.err
}

func (s *stubAPI) ContestsCount(context.Context) (int, error) { return 0, s.err }

func (s *stubAPI) ContestsUserNum(context.Context) ([]predictor.ContestUserNum, error) {
	return nil, s.err
}

func (s *stubAPI) Records(_ context.Context, _ string, skip, limit int) ([]predictor.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skips = append(s.skips, skip)
	if s.err != nil {
		return nil, s.err
	}
	if skip >= len(s.records) {
		return nil, nil
	}
	return s.records[skip:min(skip+limit, len(s.records))], nil
}

func (s *stubAPI) RecordsCount(context.Context, string) (int, error) {
	return len(s.records), s.err
}

func (s *stubAPI) UserRecords(context.Context, string, string) ([]predictor.Record, error) {
	return nil, s.err
}

func (s *stubAPI) Questions(context.Context, string) ([]predictor.Question, error) {
	return s.questions, s.err
}

func (s *stubAPI) RealTimeRank(context.Context, string, predictor.UserKey) ([]float64, error) {
	return nil, s.err
}

func (s *stubAPI) PredictedRating(_ context.Context, _ string, users []predictor.UserKey) ([]*predictor.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, users...)
	return s.ratings, s.err
}

func (s *stubAPI) HypotheticalEntry(_ context.Context, entry predictor.Entry) (predictor.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.rating, s.err
}

func ptr[T any](v T) *T {
	return &v
}

func sampleRecords(n int) []predictor.Record {
	records := make([]predictor.Record, n)
	for i := range records {
		records[i] = predictor.Record{
			ContestName: "weekly-contest-400",
			Username:    fmt.Sprintf("user%d", i+1),
			DataRegion:  predictor.RegionUS,
			Rank:        i + 1,
			Score:       18,
			OldRating:   ptr(1500.0),
			DeltaRating: ptr(12.5),
			NewRating:   ptr(1512.5),
		}
	}
	return records
}
