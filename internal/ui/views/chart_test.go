package views

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/reshape"
)

func TestQuestionEntitiesLabelByCredit(t *testing.T) {
	t.Parallel()

	questions := []predictor.Question{
		{QuestionID: 30, QI: 4, Credit: 6, Title: "Hard", RealTimeCount: []int{0, 1}},
		{QuestionID: 10, QI: 1, Credit: 3, Title: "Easy", RealTimeCount: []int{5, 9}},
		{QuestionID: 20, QI: 3, Credit: 5, Title: "Medium B", RealTimeCount: []int{1, 2}},
		{QuestionID: 25, QI: 2, Credit: 5, Title: "Medium A", RealTimeCount: []int{2, 4}},
	}

	ds := reshape.Reshape(reshape.QuestionFinished, QuestionEntities(questions))
	names := make([]string, len(ds.Series))
	for i, s := range ds.Series {
		names[i] = s.Name
	}
	if want := []string{"Q1", "Q2", "Q3", "Q4"}; !slices.Equal(names, want) {
		t.Fatalf("series = %v, want %v", names, want)
	}

	// Q2 is the lower ordinal among the two five-credit questions, even
	// though its question id is higher.
	q2, ok := ds.Subset("Q2")
	if !ok {
		t.Fatal("missing Q2")
	}
	if last, _ := q2.Last(); last.Value != 4 {
		t.Fatalf("Q2 last = %v, want 4", last.Value)
	}
	if ds.Series[0].EndLabel != "Q1: 9" {
		t.Fatalf("end label = %q, want Q1: 9", ds.Series[0].EndLabel)
	}
}

func TestRankChartLifecycle(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{ranks: []float64{900, 450, 120}}
	record := predictor.Record{Username: "alice", DataRegion: predictor.RegionUS}
	c := NewRank(api, "weekly-contest-400", record)
	c.SetStyles(Styles{})
	c.SetSize(80, 20)

	if c.Series() != nil {
		t.Fatal("chart model should not exist before push")
	}

	v, _ := deliver(t, c, c.Init())
	c = v.(*Chart)

	series := c.Series()
	if len(series) != 1 || series[0].Name != "alice" || series[0].Len() != 3 {
		t.Fatalf("series = %+v", series)
	}
	if series[0].EndLabel != "alice: 120" {
		t.Fatalf("end label = %q", series[0].EndLabel)
	}
	out := ansi.Strip(c.View())
	for _, want := range []string{"User Real Time Rank", "alice", "x: Minute  y: Rank"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	c.Dispose()
	if c.Series() != nil || !c.Dataset().Empty() {
		t.Fatal("dispose should release chart state")
	}
}

func TestChartPushAfterDisposeStartsFresh(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{questions: []predictor.Question{{QuestionID: 1, Credit: 3, RealTimeCount: []int{1, 2}}}}
	c := NewQuestions(api, "weekly-contest-400")

	stale := c.Init()
	c.Dispose()
	v, _ := deliver(t, c, stale)
	c = v.(*Chart)
	if c.ready {
		t.Fatal("result of a disposed chart should be dropped")
	}

	v, _ = deliver(t, c, c.Init())
	c = v.(*Chart)
	if len(c.Series()) != 1 {
		t.Fatalf("series = %d, want 1", len(c.Series()))
	}
}

func TestChartCaptionFollowsConfig(t *testing.T) {
	t.Parallel()

	config := reshape.Config{Title: "Solved", XAxisName: "Elapsed", YAxisName: "Solved"}
	c := newChart("Solved", "weekly-contest-400", config, func(context.Context) ([]reshape.Entity, error) {
		return nil, nil
	})
	if got := c.axisCaption(); got != "x: Elapsed  y: Solved" {
		t.Fatalf("caption before load = %q", got)
	}

	v, _ := deliver(t, c, c.Init())
	c = v.(*Chart)
	if got := c.axisCaption(); got != "x: Elapsed  y: Solved" {
		t.Fatalf("caption after load = %q", got)
	}
}

func TestChartIgnoresResultOfAnotherChart(t *testing.T) {
	t.Parallel()

	rank := NewRank(&fakeAPI{ranks: []float64{900, 450}}, "weekly-contest-400",
		predictor.Record{Username: "alice", DataRegion: predictor.RegionUS})
	pendingRank := rank.Init()
	rank.Dispose()

	api := &fakeAPI{questions: []predictor.Question{{QuestionID: 1, QI: 1, Credit: 3, RealTimeCount: []int{1, 2}}}}
	questions := NewQuestions(api, "weekly-contest-400")
	pendingQuestions := questions.Init()

	stale, ok := findMsg[fetched[chartData]](collectMsgs(t, pendingRank))
	if !ok {
		t.Fatal("expected a result from the rank chart")
	}
	v, _ := questions.Update(stale)
	questions = v.(*Chart)
	if questions.ready || !questions.fetch.Loading() {
		t.Fatal("questions chart took the rank chart's result")
	}

	v, _ = deliver(t, questions, pendingQuestions)
	questions = v.(*Chart)
	if series := questions.Series(); len(series) != 1 || series[0].Name != "Q1" {
		t.Fatalf("series = %+v", series)
	}
}
