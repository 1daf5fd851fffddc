// Package trace records the host calls a snake makes so a game can be
// inspected after the fact.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const schema = "host_trace_v1"

// Event is one host call.
//
// Args holds the call's scalar inputs in declaration order. Result is the
// scalar output, or 0 for calls without one. Note carries free text such as a
// spoken message or a death cause.
type Event struct {
	Tick    int64   `parquet:"tick"`
	Cycle   int64   `parquet:"cycle"`
	SnakeID int64   `parquet:"snake_id"`
	Call    string  `parquet:"call,dict"`
	Args    []int64 `parquet:"args"`
	Result  int64   `parquet:"result"`
	Note    string  `parquet:"note,optional"`
}

// Sink receives events as they happen.
type Sink interface {
	Record(Event)
}

// Recorder is an in-memory Sink.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// WriteFile writes events to outPath via a temp file and rename, so readers
// never see a partial file.
func WriteFile(outPath string, events []Event) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, events,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteGame writes a trace into outDir under a unique name and returns the
// final path.
func WriteGame(outDir string, gameID string, events []Event) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("trace_%s_%d.parquet", gameID, time.Now().UnixNano())
	outPath := filepath.Join(outDir, name)
	if err := WriteFile(outPath, events); err != nil {
		return "", err
	}
	return outPath, nil
}

// ReadFile loads every event from a trace file.
func ReadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if v, ok := pf.Lookup("schema"); ok && v != schema {
		return nil, fmt.Errorf("unexpected schema %q", v)
	}

	reader := parquet.NewGenericReader[Event](pf)
	defer reader.Close()

	out := make([]Event, 0, reader.NumRows())
	buf := make([]Event, 256)
	for {
		n, err := reader.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
	}
	return out, nil
}

// Tick is every event recorded during one tick.
type Tick struct {
	Tick   int64
	Events []Event
}

// GroupByTick splits events into consecutive ticks. Events are expected in
// recording order.
func GroupByTick(events []Event) []Tick {
	var out []Tick
	for _, e := range events {
		if len(out) == 0 || out[len(out)-1].Tick != e.Tick {
			out = append(out, Tick{Tick: e.Tick})
		}
		last := &out[len(out)-1]
		last.Events = append(last.Events, e)
	}
	return out
}
