package logging

import (
	"bytes"
	"os"
	"sync"
)

// RecentLog keeps the newest log records in memory for the SIGUSR1 dump.
// It stores whole lines, so a dump never starts halfway through a record,
// and drops the oldest ones once more than max bytes are held. The newest
// record is always kept even when it alone exceeds max.
type RecentLog struct {
	mu      sync.Mutex
	records [][]byte
	size    int
	max     int
	partial []byte
}

// NewRecentLog returns a RecentLog holding about limit bytes (1MB if
// limit <= 0).
func NewRecentLog(limit int) *RecentLog {
	if limit <= 0 {
		limit = 1024 * 1024
	}
	return &RecentLog{max: limit}
}

// Write implements io.Writer. Text after the last newline waits for the
// rest of its line.
func (r *RecentLog) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := p
	if len(r.partial) > 0 {
		data = append(r.partial, p...)
		r.partial = nil
	}
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		r.push(bytes.Clone(data[:i+1]))
		data = data[i+1:]
	}
	if len(data) > 0 {
		r.partial = bytes.Clone(data)
	}
	return len(p), nil
}

func (r *RecentLog) push(rec []byte) {
	r.records = append(r.records, rec)
	r.size += len(rec)
	for r.size > r.max && len(r.records) > 1 {
		r.size -= len(r.records[0])
		r.records[0] = nil
		r.records = r.records[1:]
	}
}

// Records returns the held records oldest first, limited to the given
// components when any are named.
func (r *RecentLog) Records(components ...string) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]byte, 0, len(r.records))
	for _, rec := range r.records {
		if len(components) == 0 || fromAny(rec, components) {
			out = append(out, bytes.Clone(rec))
		}
	}
	return out
}

// Dump writes Records(components...) to path.
func (r *RecentLog) Dump(path string, components ...string) error {
	return os.WriteFile(path, bytes.Join(r.Records(components...), nil), 0o644)
}

// fromAny reports whether a JSON or text record carries one of the
// component attributes.
func fromAny(rec []byte, components []string) bool {
	for _, c := range components {
		if bytes.Contains(rec, []byte(`"component":"`+c+`"`)) {
			return true
		}
		text := []byte(" component=" + c)
		if i := bytes.Index(rec, text); i >= 0 {
			rest := rec[i+len(text):]
			if len(rest) == 0 || rest[0] == ' ' || rest[0] == '\n' {
				return true
			}
		}
	}
	return false
}
