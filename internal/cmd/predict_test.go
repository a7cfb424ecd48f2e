package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
)

func TestRunPredict(t *testing.T) {
	t.Parallel()

	api := &stubAPI{ratings: []*predictor.Rating{
		{Old: ptr(1800.0), New: ptr(1785.25), Delta: ptr(-14.75)},
		nil,
	}}

	var out bytes.Buffer
	if err := runPredict(context.Background(), &out, api, "weekly-contest-400", []string{"alice", " bob "}, "us"); err != nil {
		t.Fatalf("runPredict() error = %v", err)
	}

	want := []predictor.UserKey{{Username: "alice", DataRegion: "US"}, {Username: "bob", DataRegion: "US"}}
	if len(api.users) != 2 || api.users[0] != want[0] || api.users[1] != want[1] {
		t.Fatalf("users = %v, want %v", api.users, want)
	}

	text := ansi.Strip(out.String())
	for _, s := range []string{"Username", "alice", "1800.00", "-14.75", "1785.25", "bob", "pending"} {
		if !strings.Contains(text, s) {
			t.Fatalf("output missing %q:\n%s", s, text)
		}
	}
}

func TestRunPredictError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := runPredict(context.Background(), &bytes.Buffer{}, &stubAPI{err: boom}, "weekly-contest-400", []string{"alice"}, "US")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestWhatIfEntry(t *testing.T) {
	t.Parallel()

	opts := whatIfOptions{username: " alice ", region: "cn", rank: 120, score: 18, finish: "2024-06-02T03:41:12"}
	entry, err := opts.entry("weekly-contest-400")
	if err != nil {
		t.Fatalf("entry() error = %v", err)
	}
	want := predictor.Entry{
		ContestName: "weekly-contest-400",
		Username:    "alice",
		DataRegion:  "CN",
		Rank:        120,
		Score:       18,
		FinishTime:  predictor.Time{Time: time.Date(2024, 6, 2, 3, 41, 12, 0, time.UTC)},
	}
	if entry != want {
		t.Fatalf("entry = %+v, want %+v", entry, want)
	}

	opts.finish = "soon"
	if _, err := opts.entry("weekly-contest-400"); err == nil {
		t.Fatal("expected error for bad finish time")
	}
}

func TestRunWhatIf(t *testing.T) {
	t.Parallel()

	api := &stubAPI{rating: predictor.Rating{Old: ptr(1500.0), New: ptr(1530.0), Delta: ptr(30.0)}}
	entry := predictor.Entry{ContestName: "weekly-contest-400", Username: "alice", DataRegion: "US", Rank: 10}

	var out bytes.Buffer
	if err := runWhatIf(context.Background(), &out, api, entry); err != nil {
		t.Fatalf("runWhatIf() error = %v", err)
	}
	if len(api.entries) != 1 || api.entries[0] != entry {
		t.Fatalf("entries = %v", api.entries)
	}
	if text := ansi.Strip(out.String()); !strings.Contains(text, "+30.00") || !strings.Contains(text, "1530.00") {
		t.Fatalf("output = %s", text)
	}
}
