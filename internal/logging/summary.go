package logging

import (
	"log/slog"
	"sort"
	"sync"
	"time"
)

type summaryKey struct {
	component string
	event     string
}

// pointerArea is the bounding box of the cells a pointer visited.
type pointerArea struct {
	minX, minY, maxX, maxY int
	lastX, lastY           int
}

func (a *pointerArea) add(x, y int) {
	a.minX, a.maxX = min(a.minX, x), max(a.maxX, x)
	a.minY, a.maxY = min(a.minY, y), max(a.maxY, y)
	a.lastX, a.lastY = x, y
}

type pendingSummary struct {
	count  int64
	since  time.Time
	area   *pointerArea
	fields []slog.Attr
}

// Summarizer folds bursts of input events (wheel ticks, pointer motion) into
// one input_summary line per component and event. A window opens with the
// first event after a flush and closes interval later; nothing runs while
// input is idle. Pointer events keep the area they covered instead of each
// position.
type Summarizer struct {
	logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	pending map[summaryKey]*pendingSummary
	timer   *time.Timer
	stopped bool
}

// NewSummarizer returns a summarizer that flushes interval after the first
// event of a window. A nil logger drops everything.
func NewSummarizer(logger *slog.Logger, interval time.Duration) *Summarizer {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Summarizer{
		logger:   logger,
		interval: interval,
		pending:  make(map[summaryKey]*pendingSummary),
	}
}

// Count records one event. Non-empty fields replace the ones kept so far.
func (s *Summarizer) Count(component, event string, fields ...slog.Attr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.entry(component, event); p != nil && len(fields) > 0 {
		p.fields = fields
	}
}

// Point records one pointer event at cell (x, y).
func (s *Summarizer) Point(component, event string, x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.entry(component, event)
	if p == nil {
		return
	}
	if p.area == nil {
		p.area = &pointerArea{minX: x, minY: y, maxX: x, maxY: y}
	}
	p.area.add(x, y)
}

// entry bumps the counter for key and arms the flush timer. Called with mu
// held; nil once stopped.
func (s *Summarizer) entry(component, event string) *pendingSummary {
	if s.stopped {
		return nil
	}
	key := summaryKey{component: component, event: event}
	p, ok := s.pending[key]
	if !ok {
		p = &pendingSummary{since: time.Now()}
		s.pending[key] = p
	}
	p.count++
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.Flush)
	}
	return p
}

// Flush writes the pending summaries now and closes the window.
func (s *Summarizer) Flush() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[summaryKey]*pendingSummary)
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if s.logger == nil || len(pending) == 0 {
		return
	}

	keys := make([]summaryKey, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].component != keys[j].component {
			return keys[i].component < keys[j].component
		}
		return keys[i].event < keys[j].event
	})

	now := time.Now()
	for _, k := range keys {
		p := pending[k]
		attrs := []any{
			slog.String("component", k.component),
			slog.String("event", k.event),
			slog.Int64("count", p.count),
			slog.Int64("span_ms", now.Sub(p.since).Milliseconds()),
		}
		if a := p.area; a != nil {
			attrs = append(attrs,
				slog.Group("area",
					slog.Int("x0", a.minX), slog.Int("y0", a.minY),
					slog.Int("x1", a.maxX), slog.Int("y1", a.maxY)),
				slog.Int("last_x", a.lastX),
				slog.Int("last_y", a.lastY))
		}
		for _, f := range p.fields {
			attrs = append(attrs, f)
		}
		s.logger.Info("input_summary", attrs...)
	}
}

// Stop flushes what is pending and ignores later events.
func (s *Summarizer) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.Flush()
}
