package views

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
	"github.com/lccn-predictor/lazyrating/internal/ui/dialogs"
	filterdialog "github.com/lccn-predictor/lazyrating/internal/ui/dialogs/filter"
)

var testContest = predictor.Contest{TitleSlug: "weekly-contest-400", Title: "Weekly Contest 400"}

func newTestRecords(t *testing.T, api *fakeAPI) *Records {
	t.Helper()
	r := NewRecords(api, testContest)
	r.SetStyles(Styles{})
	r.SetSize(100, 40)
	v, _ := deliver(t, r, r.Init())
	return v.(*Records)
}

func TestRecordsLoadsPage(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{records: sampleRecords(60)}
	r := newTestRecords(t, api)

	if got := r.table.RowCount(); got != RecordsPageSize {
		t.Fatalf("rows = %d, want %d", got, RecordsPageSize)
	}
	if r.pager.Links().MaxPage != 3 {
		t.Fatalf("max page = %d, want 3", r.pager.Links().MaxPage)
	}

	out := ansi.Strip(r.View())
	for _, want := range []string{"Weekly Contest 400", "#1", "user1", "+10.00", "1510.00", "60 records"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestRecordsSearchDisablesPaging(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{records: sampleRecords(60)}
	r := newTestRecords(t, api)

	v, cmd := r.Update(keyText("/"))
	r = v.(*Records)
	open, ok := findMsg[dialogs.OpenDialogMsg](collectMsgs(t, cmd))
	if !ok || open.Model.ID() != filterdialog.DialogID {
		t.Fatal("expected filter dialog to open")
	}

	v, cmd = r.Update(filterdialog.ActionMsg{Action: filterdialog.ActionApply, Query: " user7 "})
	v, _ = deliver(t, v, cmd)
	r = v.(*Records)

	if r.Search() != "user7" {
		t.Fatalf("search = %q, want user7", r.Search())
	}
	if len(api.userQueries) != 1 || api.userQueries[0] != "user7" {
		t.Fatalf("user queries = %v", api.userQueries)
	}
	if got := r.table.RowCount(); got != 1 {
		t.Fatalf("rows = %d, want 1", got)
	}
	if strings.Contains(ansi.Strip(r.View()), "page 1 of") {
		t.Fatal("pager shown in search mode")
	}

	skips := len(api.skips)
	v, cmd = r.Update(keyText("]"))
	r = v.(*Records)
	deliver(t, r, cmd)
	if r.Page() != 1 || len(api.skips) != skips {
		t.Fatal("paging should be disabled while searching")
	}

	handled, cmd := r.InterceptBack()
	if !handled {
		t.Fatal("back should clear the search first")
	}
	v, _ = deliver(t, r, cmd)
	r = v.(*Records)
	if r.Search() != "" {
		t.Fatalf("search = %q after back, want empty", r.Search())
	}
	if got := r.table.RowCount(); got != RecordsPageSize {
		t.Fatalf("rows = %d after clearing, want %d", got, RecordsPageSize)
	}
	if handled, _ := r.InterceptBack(); handled {
		t.Fatal("back should not be intercepted without a search")
	}
}

func TestRecordsClearSearchKey(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{records: sampleRecords(5)}
	r := newTestRecords(t, api)

	v, cmd := r.Update(filterdialog.ActionMsg{Action: filterdialog.ActionApply, Query: "user2"})
	v, _ = deliver(t, v, cmd)
	r = v.(*Records)

	v, cmd = r.Update(tea.KeyPressMsg(tea.Key{Code: 'u', Mod: tea.ModCtrl}))
	v, _ = deliver(t, v, cmd)
	r = v.(*Records)
	if r.Search() != "" {
		t.Fatalf("search = %q, want empty", r.Search())
	}
}

func TestRecordsActions(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{records: sampleRecords(5)}
	r := newTestRecords(t, api)
	r.table.SetCursor(2)

	_, cmd := r.Update(keyCode(tea.KeyEnter))
	rank, ok := findMsg[ShowRankMsg](collectMsgs(t, cmd))
	if !ok || rank.Record.Username != "user3" || rank.Contest != testContest.TitleSlug {
		t.Fatalf("got %#v, want rank of user3", rank)
	}

	_, cmd = r.Update(keyText("t"))
	questions, ok := findMsg[ShowQuestionsMsg](collectMsgs(t, cmd))
	if !ok || questions.Contest != testContest.TitleSlug {
		t.Fatalf("got %#v, want questions of %s", questions, testContest.TitleSlug)
	}

	_, cmd = r.Update(keyText("d"))
	detail, ok := findMsg[ShowRecordDetailMsg](collectMsgs(t, cmd))
	if !ok || detail.Record.Username != "user3" {
		t.Fatalf("got %#v, want detail of user3", detail)
	}
}

func TestRecordsDeltaTint(t *testing.T) {
	t.Parallel()

	r := NewRecords(&fakeAPI{}, testContest)
	up, down := 1.5, -2.0
	zero := 0.0

	if got := r.renderDelta(&up); ansi.Strip(got) != "+1.50" {
		t.Fatalf("up = %q", got)
	}
	if got := r.renderDelta(&down); ansi.Strip(got) != "-2.00" {
		t.Fatalf("down = %q", got)
	}
	if got := r.renderDelta(&zero); got != "0.00" {
		t.Fatalf("zero = %q", got)
	}
	if got := r.renderDelta(nil); ansi.Strip(got) != "-" {
		t.Fatalf("nil = %q", got)
	}
}

func TestRecordsIgnoresResultOfDisposedView(t *testing.T) {
	t.Parallel()

	apiA := &fakeAPI{records: []predictor.Record{{ContestName: "weekly-contest-399", Username: "from-contest-a", Rank: 1}}}
	a := NewRecords(apiA, predictor.Contest{TitleSlug: "weekly-contest-399"})
	pendingA := a.Init()
	a.Dispose()

	b := NewRecords(&fakeAPI{records: sampleRecords(3)}, testContest)
	b.SetStyles(Styles{})
	b.SetSize(100, 40)
	pendingB := b.Init()

	stale, ok := findMsg[fetched[recordsPage]](collectMsgs(t, pendingA))
	if !ok {
		t.Fatal("expected a result from the disposed view")
	}
	v, _ := b.Update(stale)
	b = v.(*Records)
	if b.ready || len(b.records) != 0 {
		t.Fatalf("records = %v, want none", b.records)
	}
	if !b.fetch.Loading() {
		t.Fatal("own fetch should still be in flight")
	}

	v, _ = deliver(t, b, pendingB)
	b = v.(*Records)
	out := ansi.Strip(b.View())
	if strings.Contains(out, "from-contest-a") || !strings.Contains(out, "user1") {
		t.Fatalf("unexpected view:\n%s", out)
	}
}

func TestRecordsSearchKeepsPagedTotal(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{records: sampleRecords(60)}
	r := newTestRecords(t, api)

	v, cmd := r.Update(filterdialog.ActionMsg{Action: filterdialog.ActionApply, Query: "user7"})
	v, _ = deliver(t, v, cmd)
	r = v.(*Records)
	if !strings.Contains(ansi.Strip(r.View()), "1 matches") {
		t.Fatal("match count not shown")
	}

	// Clearing the search computes page targets before the refetch lands.
	r.Update(tea.KeyPressMsg(tea.Key{Code: 'u', Mod: tea.ModCtrl}))
	if got := r.links().MaxPage; got != 3 {
		t.Fatalf("max page after clearing = %d, want 3", got)
	}
	v, _ = r.Update(keyText(">"))
	if got := v.(*Records).Page(); got != 3 {
		t.Fatalf("page after last = %d, want 3", got)
	}
}
