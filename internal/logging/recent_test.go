package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joined(recs [][]byte) string {
	var b strings.Builder
	for _, r := range recs {
		b.Write(r)
	}
	return b.String()
}

func TestRecentLog_Write(t *testing.T) {
	tests := []struct {
		name   string
		max    int
		writes []string
		want   string
	}{
		{"fits", 64, []string{"a\n", "b\n"}, "a\nb\n"},
		{"drops oldest whole lines", 8, []string{"one\n", "two\n", "three\n"}, "three\n"},
		{"keeps lines under max", 10, []string{"one\n", "two\n", "six\n"}, "two\nsix\n"},
		{"oversized line kept alone", 4, []string{"abcdefgh\n"}, "abcdefgh\n"},
		{"joins split writes", 64, []string{"hal", "f\nnext", "\n"}, "half\nnext\n"},
		{"pending tail not returned", 64, []string{"done\nwait"}, "done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecentLog(tt.max)
			for _, w := range tt.writes {
				n, err := r.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n)
			}
			assert.Equal(t, tt.want, joined(r.Records()))
		})
	}
}

func TestRecentLog_DefaultSize(t *testing.T) {
	assert.Equal(t, 1024*1024, NewRecentLog(0).max)
}

func TestRecentLog_FilterByComponent(t *testing.T) {
	r := NewRecentLog(0)
	_, _ = r.Write([]byte(`{"msg":"a","component":"panel"}` + "\n"))
	_, _ = r.Write([]byte(`{"msg":"b","component":"config"}` + "\n"))
	_, _ = r.Write([]byte("time=x level=INFO msg=c component=input\n"))
	_, _ = r.Write([]byte("time=x level=INFO msg=d component=inputs x=1\n"))
	_, _ = r.Write([]byte("time=x level=INFO msg=e component=panel x=1\n"))

	got := joined(r.Records(CompPanel, CompInput))
	assert.Contains(t, got, `"msg":"a"`)
	assert.NotContains(t, got, `"msg":"b"`)
	assert.Contains(t, got, "msg=c")
	assert.NotContains(t, got, "msg=d")
	assert.Contains(t, got, "msg=e")

	assert.Len(t, r.Records(), 5)
}

func TestRecentLog_Dump(t *testing.T) {
	r := NewRecentLog(64)
	_, _ = r.Write([]byte("line one\nline two\n"))

	path := filepath.Join(t.TempDir(), "dump.log")
	require.NoError(t, r.Dump(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(data))
}

func TestRecentLog_Concurrent(t *testing.T) {
	r := NewRecentLog(130)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.Write([]byte("pointer_down\n"))
			}
		}()
	}
	wg.Wait()
	assert.Len(t, r.Records(), 10)
}
