package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles colors each part of a text record. Styles are bound to a
// renderer for the output writer, so writers that are not terminals receive
// plain text.
type prettyStyles struct {
	key, str, num, yes, no, dur, time lipgloss.Style

	trace, debug, info, warn, err lipgloss.Style
}

func makePrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return prettyStyles{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		time:  fg("4"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3").Bold(true),
		err:   fg("1").Bold(true),
	}
}

func (s prettyStyles) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return s.err
	case l >= slog.LevelWarn:
		return s.warn
	case l >= slog.LevelInfo:
		return s.info
	case l >= slog.LevelDebug:
		return s.debug
	default:
		return s.trace
	}
}

// prettyHandler writes colorized key=value records without quoting.
type prettyHandler struct {
	opts       slog.HandlerOptions
	styles     prettyStyles
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	prefix     string // group prefix for attribute keys
	preformat  []byte // attributes added via WithAttrs
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		styles:     makePrettyStyles(w),
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.styles.time.Render(ts))
		}
	}

	h.space(buf)
	buf.WriteString(
		h.styles.level(r.Level).Render(
			fmt.Sprintf("%-5s", strings.ToUpper(Level(r.Level).String())),
		),
	)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.space(buf)
			buf.WriteString(
				h.styles.key.Render(src.File + ":" + strconv.Itoa(src.Line)),
			)
		}
	}

	h.space(buf)
	buf.WriteString(r.Message)

	if len(h.preformat) > 0 {
		buf.Write(h.preformat)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h

	buf := bytes.NewBuffer(append([]byte(nil), h.preformat...))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}

	c.preformat = buf.Bytes()

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (*prettyHandler) space(buf *bytes.Buffer) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range group {
			h.writeAttr(buf, prefix, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.styles.str.Render(v.String())

	case slog.KindInt64:
		return h.styles.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.styles.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.styles.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.styles.yes.Render("true")
		}

		return h.styles.no.Render("false")

	case slog.KindDuration:
		return h.styles.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.styles.time.Render(h.formatTime(v.Time()))

	default:
		if err, ok := v.Any().(error); ok {
			return h.styles.no.Render(err.Error())
		}

		return h.styles.str.Render(v.String())
	}
}
