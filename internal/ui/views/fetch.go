package views

import (
	"context"
	"errors"
	"sync/atomic"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/lccn-predictor/lazyrating/internal/devtools"
)

// FetchResult is implemented by every message that completes a view fetch.
type FetchResult interface {
	FetchErr() error
}

// fetched carries the outcome of one fetch back to the view that started it.
type fetched[T any] struct {
	id    uint64
	value T
	err   error
}

// FetchErr implements FetchResult.
func (f fetched[T]) FetchErr() error {
	return f.err
}

// fetchIDs hands out request ids shared by every fetcher, so a result can
// only ever match the fetcher that started it.
var fetchIDs atomic.Uint64

// fetcher guards a view against stale responses. Starting a fetch cancels
// the previous one and takes a new request id; results with any other id
// are dropped.
type fetcher struct {
	origin  string
	id      uint64
	cancel  context.CancelFunc
	loading bool
	spinner spinner.Model
}

func newFetcher(origin string) fetcher {
	return fetcher{
		origin:  origin,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// fetch starts fn under a fresh request id.
func fetch[T any](f *fetcher, fn func(context.Context) (T, error)) tea.Cmd {
	ctx := f.begin()
	id := f.id
	return tea.Batch(
		f.spinner.Tick,
		func() tea.Msg {
			value, err := fn(ctx)
			return fetched[T]{id: id, value: value, err: err}
		},
	)
}

func (f *fetcher) begin() context.Context {
	if f.cancel != nil {
		f.cancel()
	}
	f.id = fetchIDs.Add(1)
	ctx, cancel := context.WithCancel(devtools.WithOrigin(context.Background(), f.origin))
	f.cancel = cancel
	f.loading = true
	return ctx
}

// accept reports whether id belongs to the latest fetch and, if so, ends it.
func (f *fetcher) accept(id uint64) bool {
	if id != f.id {
		return false
	}
	f.loading = false
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return true
}

// stop cancels the in-flight fetch. Its result will be dropped.
func (f *fetcher) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.id = fetchIDs.Add(1)
	f.loading = false
}

func (f fetcher) Loading() bool {
	return f.loading
}

func (f *fetcher) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !f.loading {
		return nil
	}
	var cmd tea.Cmd
	f.spinner, cmd = f.spinner.Update(msg)
	return cmd
}

// indicator renders the spinner while loading.
func (f fetcher) indicator() string {
	if !f.loading {
		return ""
	}
	return f.spinner.View()
}

// connectionErrorCmd surfaces err to the app. Cancellations are expected
// when a fetch is superseded and stay silent.
func connectionErrorCmd(err error) tea.Cmd {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return func() tea.Msg {
		return ConnectionErrorMsg{Err: err}
	}
}
