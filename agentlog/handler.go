// Package agentlog routes log/slog records through the host's diagnostic
// channel.
//
// Each record becomes one compact line, for example
//
//	INFO turning dir=east tick=12
//
// The host bounds message length and count per tick and drops the excess
// silently, so this is for low-volume diagnostics only.
package agentlog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Speaker emits a diagnostic message. *sdk.Client satisfies it.
type Speaker interface {
	Speak(msg []byte)
}

// MaxLineLength matches the host's message bound.
const MaxLineLength = 64

var _ slog.Handler = (*Handler)(nil)

type Handler struct {
	out   Speaker
	mu    *sync.Mutex
	level slog.Leveler

	// pre holds attrs added by WithAttrs, already formatted.
	pre    string
	prefix string
}

// NewHandler returns a handler writing to out. Only opts.Level is used.
func NewHandler(out Speaker, opts *slog.HandlerOptions) *Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &Handler{
		out:   out,
		mu:    &sync.Mutex{},
		level: level,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Level.String())
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.pre)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})

	line := b.String()
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength]
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.Speak([]byte(line))
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.pre)
	for _, a := range attrs {
		writeAttr(&b, h.prefix, a)
	}
	clone := *h
	clone.pre = b.String()
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.prefix == "" {
		clone.prefix = name
	} else {
		clone.prefix = h.prefix + "." + name
	}
	return &clone
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	writeValue(b, key, a.Value)
}

func writeValue(b *strings.Builder, key string, v slog.Value) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " =\"") {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	case slog.KindInt64:
		b.WriteString(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		b.WriteString(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case slog.KindDuration:
		b.WriteString(v.Duration().String())
	case slog.KindTime:
		b.WriteString(v.Time().Format(time.RFC3339))
	default:
		b.WriteString(v.String())
	}
}
