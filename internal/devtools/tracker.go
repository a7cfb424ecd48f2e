// Package devtools records outgoing API requests and cache commands for the
// development request log.
package devtools

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLogLimit = 500

type originKey struct{}

// EntryKind describes the type of a tracked entry.
type EntryKind int

const (
	// EntryRequest represents a single HTTP request to the prediction API.
	EntryRequest EntryKind = iota
	// EntryCache represents a single Redis cache command.
	EntryCache
	// EntryPipeline marks the execution of a Redis pipeline.
	EntryPipeline
)

// String returns a short label for the entry kind.
func (k EntryKind) String() string {
	switch k {
	case EntryRequest:
		return "http"
	case EntryCache:
		return "cache"
	case EntryPipeline:
		return "pipeline"
	default:
		return "?"
	}
}

// Entry captures a single tracked operation.
type Entry struct {
	Kind     EntryKind
	Command  string
	Status   int
	Err      string
	Duration time.Duration
}

// LogEntry captures a single tracked log line.
type LogEntry struct {
	Seq    uint64
	Time   time.Time
	Origin string
	Entry  Entry
}

// Tracker keeps a bounded ring of recent entries.
type Tracker struct {
	logLimit int
	logMu    sync.RWMutex
	log      []LogEntry
	logHead  int
	logFull  bool
	logSeq   uint64
	now      func() time.Time
}

// NewTracker creates a new development tracker.
func NewTracker() *Tracker {
	return NewTrackerWithLimit(defaultLogLimit)
}

// NewTrackerWithLimit creates a tracker keeping at most limit entries.
func NewTrackerWithLimit(limit int) *Tracker {
	return &Tracker{
		logLimit: max(limit, 0),
		now:      time.Now,
	}
}

// WithOrigin returns a context carrying the origin label.
func WithOrigin(ctx context.Context, origin string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if origin == "" {
		return ctx
	}
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext extracts the origin label from context.
func OriginFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if origin, ok := ctx.Value(originKey{}).(string); ok {
		return origin
	}
	return ""
}

// LogEntries returns the most recent entries in chronological order.
func (t *Tracker) LogEntries() []LogEntry {
	if t == nil {
		return nil
	}
	t.logMu.RLock()
	defer t.logMu.RUnlock()
	if len(t.log) == 0 {
		return nil
	}
	if !t.logFull {
		return append([]LogEntry(nil), t.log...)
	}
	result := make([]LogEntry, 0, len(t.log))
	result = append(result, t.log[t.logHead:]...)
	result = append(result, t.log[:t.logHead]...)
	return result
}

// Len returns the number of retained entries.
func (t *Tracker) Len() int {
	if t == nil {
		return 0
	}
	t.logMu.RLock()
	defer t.logMu.RUnlock()
	return len(t.log)
}

// AppendLog appends a log entry to the ring buffer.
func (t *Tracker) AppendLog(entry LogEntry) {
	if t == nil || t.logLimit == 0 {
		return
	}

	t.logMu.Lock()
	defer t.logMu.Unlock()
	entry.Seq = t.logSeq
	t.logSeq++
	if len(t.log) < t.logLimit {
		t.log = append(t.log, entry)
		if len(t.log) == t.logLimit {
			t.logHead = 0
			t.logFull = true
		}
		return
	}
	t.log[t.logHead] = entry
	t.logHead = (t.logHead + 1) % t.logLimit
	t.logFull = true
}

// Record appends an entry stamped with the current time and context origin.
func (t *Tracker) Record(ctx context.Context, entry Entry) {
	if t == nil {
		return
	}
	origin := OriginFromContext(ctx)
	if origin == "" {
		origin = "unknown"
	}
	t.AppendLog(LogEntry{
		Time:   t.now(),
		Origin: origin,
		Entry:  entry,
	})
}

// Transport wraps next with request tracking. A nil next uses http.DefaultTransport.
func (t *Tracker) Transport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return roundTripper{tracker: t, next: next}
}

// Hook returns a Redis hook for tracking cache commands.
func (t *Tracker) Hook() redis.Hook {
	return hook{tracker: t}
}

// FormatDuration renders a compact duration string.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < 10*time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

type roundTripper struct {
	tracker *Tracker
	next    http.RoundTripper
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	entry := Entry{
		Kind:     EntryRequest,
		Command:  req.Method + " " + req.URL.RequestURI(),
		Duration: time.Since(start),
	}
	if err != nil {
		entry.Err = err.Error()
	}
	if resp != nil {
		entry.Status = resp.StatusCode
	}
	rt.tracker.Record(req.Context(), entry)
	return resp, err
}

type hook struct {
	tracker *Tracker
}

func (h hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (h hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.record(ctx, EntryCache, formatCommand(cmd), err, time.Since(start))
		return err
	}
}

func (h hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if len(cmds) == 0 {
			return next(ctx, cmds)
		}
		start := time.Now()
		err := next(ctx, cmds)
		names := make([]string, len(cmds))
		for i, cmd := range cmds {
			names[i] = formatCommand(cmd)
		}
		h.record(ctx, EntryPipeline, strings.Join(names, "; "), err, time.Since(start))
		return err
	}
}

func (h hook) record(ctx context.Context, kind EntryKind, command string, err error, duration time.Duration) {
	entry := Entry{
		Kind:     kind,
		Command:  command,
		Duration: duration,
	}
	if err != nil && err != redis.Nil {
		entry.Err = err.Error()
	}
	h.tracker.Record(ctx, entry)
}

// formatCommand renders a Redis command, eliding large values.
func formatCommand(cmd redis.Cmder) string {
	args := cmd.Args()
	if len(args) == 0 {
		return cmd.Name()
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		s := fmt.Sprint(arg)
		if len(s) > 64 {
			s = s[:61] + "..."
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}
