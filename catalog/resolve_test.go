package catalog

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSection(t *testing.T) {
	tests := []struct {
		name string
		sec  Section
		want map[string]string
	}{
		{
			name: "simple reference",
			sec: Section{
				"greeting": StringValue("Hello {name}"),
				"name":     StringValue("World"),
			},
			want: map[string]string{
				"greeting": "Hello World",
				"name":     "World",
			},
		},
		{
			name: "diamond",
			sec: Section{
				"x": StringValue("{y}-{z}"),
				"y": StringValue("{z}"),
				"z": StringValue("end"),
			},
			want: map[string]string{"x": "end-end", "y": "end", "z": "end"},
		},
		{
			name: "integer target",
			sec: Section{
				"count": IntegerValue(3),
				"msg":   StringValue("n={count}"),
			},
			want: map[string]string{"count": "3", "msg": "n=3"},
		},
		{
			name: "chain",
			sec: Section{
				"a": StringValue("<{b}>"),
				"b": StringValue("<{c}>"),
				"c": StringValue("<{d}>"),
				"d": StringValue("."),
			},
			want: map[string]string{"a": "<<<.>>>", "b": "<<.>>", "c": "<.>", "d": "."},
		},
		{
			name: "stray closing brace",
			sec: Section{
				"a": StringValue("} {b} }"),
				"b": StringValue("x"),
			},
			want: map[string]string{"a": "} x }", "b": "x"},
		},
		{
			name: "resolved text is not rescanned",
			sec: Section{
				"a": StringValue("[{b}]"),
				"b": StringValue("}"),
			},
			want: map[string]string{"a": "[}]", "b": "}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResolveSection(context.Background(), "test", tt.sec)
			require.NoError(t, err)

			got := make(map[string]string, len(tt.sec))
			for name, v := range tt.sec {
				got[name] = v.String()
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSection_ScalarRendering(t *testing.T) {
	tests := []struct {
		name   string
		target Value
		want   string
	}{
		{name: "string", target: StringValue("text"), want: "text"},
		{name: "empty string", target: StringValue(""), want: ""},
		{name: "integer", target: IntegerValue(42), want: "42"},
		{name: "negative integer", target: IntegerValue(-7), want: "-7"},
		{name: "float", target: FloatValue(2.5), want: "2.5"},
		{name: "whole float", target: FloatValue(3), want: "3"},
		{name: "large float", target: FloatValue(1e21), want: "1000000000000000000000"},
		{name: "small float", target: FloatValue(0.000001), want: "0.000001"},
		{name: "infinity", target: FloatValue(math.Inf(1)), want: "inf"},
		{name: "negative infinity", target: FloatValue(math.Inf(-1)), want: "-inf"},
		{name: "not a number", target: FloatValue(math.NaN()), want: "nan"},
		{name: "true", target: BooleanValue(true), want: "true"},
		{name: "false", target: BooleanValue(false), want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := Section{
				"out":    StringValue("={target}="),
				"target": tt.target,
			}

			require.NoError(t, ResolveSection(context.Background(), "test", sec))
			assert.Equal(t, StringValue("="+tt.want+"="), sec["out"])
			assert.Equal(t, tt.target.Kind, sec["target"].Kind)
		})
	}
}

func TestResolveSection_NoReferences(t *testing.T) {
	sec := Section{
		"host":    StringValue("localhost"),
		"port":    IntegerValue(8080),
		"ratio":   FloatValue(0.5),
		"enabled": BooleanValue(true),
		"tags":    OtherValue([]any{"a", "{b}"}),
		"nested":  OtherValue(map[string]any{"k": "{v}"}),
	}
	want := sec.Clone()

	require.NoError(t, ResolveSection(context.Background(), "test", sec))
	assert.Equal(t, want, sec)
}

func TestResolveSection_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sec      Section
		sentinel *Error
		contains []string
	}{
		{
			name: "two-field cycle",
			sec: Section{
				"a": StringValue("{b}"),
				"b": StringValue("{a}"),
			},
			sentinel: ErrCyclicReference,
			contains: []string{`"a"`, `"b"`},
		},
		{
			name:     "self reference",
			sec:      Section{"a": StringValue("again {a}")},
			sentinel: ErrCyclicReference,
			contains: []string{`"a" <-> "a"`, "a -> a"},
		},
		{
			name: "long cycle behind acyclic prefix",
			sec: Section{
				"a": StringValue("{b}"),
				"b": StringValue("{c}"),
				"c": StringValue("{d}"),
				"d": StringValue("{b}"),
			},
			sentinel: ErrCyclicReference,
			contains: []string{"b -> c -> d -> b"},
		},
		{
			name: "table target",
			sec: Section{
				"bad":         StringValue("{table_field}"),
				"table_field": OtherValue(map[string]any{"k": "v"}),
			},
			sentinel: ErrUnsupportedReferenceType,
			contains: []string{`field "bad"`, "{table_field} is table"},
		},
		{
			name: "array target",
			sec: Section{
				"bad":  StringValue("{list}"),
				"list": OtherValue([]any{int64(1), int64(2)}),
			},
			sentinel: ErrUnsupportedReferenceType,
			contains: []string{"is array"},
		},
		{
			name:     "unknown reference",
			sec:      Section{"a": StringValue("{missing}")},
			sentinel: ErrUnknownReference,
			contains: []string{`field "a"`, "{missing}"},
		},
		{
			name: "reserved STRING without references",
			sec: Section{
				"STRING": StringValue("plain"),
				"other":  StringValue("{x}"),
				"x":      StringValue("y"),
			},
			sentinel: ErrReservedName,
			contains: []string{`field "STRING"`},
		},
		{
			name:     "reserved NUMBER of any kind",
			sec:      Section{"NUMBER": IntegerValue(1)},
			sentinel: ErrReservedName,
			contains: []string{`field "NUMBER"`},
		},
		{
			name: "reserved name wins over malformed value",
			sec: Section{
				"STRING": StringValue("ok"),
				"a":      StringValue("{"),
			},
			sentinel: ErrReservedName,
		},
		{
			name:     "malformed value",
			sec:      Section{"a": StringValue("{b")},
			sentinel: ErrMalformedReference,
			contains: []string{`field "a"`, "unmatched"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResolveSection(context.Background(), "sec", tt.sec)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), `section "sec"`)

			for _, s := range tt.contains {
				assert.Contains(t, err.Error(), s)
			}

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Contains(t, e.Attrs(), attrString("section", "sec"))
		})
	}
}

func TestResolveSection_CycleAttrs(t *testing.T) {
	sec := Section{
		"a": StringValue("{b}"),
		"b": StringValue("{a}"),
	}

	err := ResolveSection(context.Background(), "s", sec)
	require.ErrorIs(t, err, ErrCyclicReference)

	var e *Error
	require.True(t, errors.As(err, &e))

	// roots are visited in sorted order, so the walk from a closes at b
	assert.Contains(t, e.Attrs(), attrString("field", "b"))
	assert.Contains(t, e.Attrs(), attrString("reference", "a"))
}

func TestResolve_Document(t *testing.T) {
	doc := mustDecode(t, `
[greeter]
name = "World"
greeting = "Hello {name}"

[counter]
count = 3
msg = "n={count}"

[independent]
name = "other"
greeting = "bye {name}"
`)

	got, err := Resolve(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]string{
		"greeter":     {"name": "World", "greeting": "Hello World"},
		"counter":     {"count": "3", "msg": "n=3"},
		"independent": {"name": "other", "greeting": "bye other"},
	}, resolved(got))
}

func TestResolve_SectionsAreIsolated(t *testing.T) {
	doc := mustDecode(t, `
[a]
name = "x"

[b]
greeting = "{name}"
`)

	_, err := Resolve(context.Background(), doc)
	require.ErrorIs(t, err, ErrUnknownReference)
	assert.Contains(t, err.Error(), `section "b"`)
}

func TestResolve_Confluence(t *testing.T) {
	const source = `
[s]
a = "{b}{c}{d}"
b = "{c}{e}"
c = "{d}{e}"
d = "{e}"
e = "."
f = "{a}|{b}"
n = 10
m = "{n}{a}"
`

	want := map[string]string{
		"a": "......",
		"b": "...",
		"c": "..",
		"d": ".",
		"e": ".",
		"f": "......|...",
		"n": "10",
		"m": "10......",
	}

	for i := range 20 {
		doc := mustDecode(t, source)

		got, err := Resolve(context.Background(), doc, WithConcurrency(1+i%4))
		require.NoError(t, err)
		assert.Equal(t, want, resolved(got)["s"])
	}

	// every field as the first root
	for first := range want {
		sec := mustDecode(t, source)["s"]

		idx, err := indexSection(sec)
		require.NoError(t, err)

		r := resolver{ctx: context.Background(), section: sec, index: idx}

		for _, root := range append([]string{first}, idx.pendingNames()...) {
			if !idx[root].pending() {
				continue
			}

			require.NoError(t, r.check(root))
			require.NoError(t, r.substitute(root))
		}

		assert.Equal(t, want, resolved(Document{"s": sec})["s"], first)
	}
}

func TestResolve_Concurrent(t *testing.T) {
	var b strings.Builder

	for i := range 64 {
		b.WriteString("[s")
		b.WriteString(strings.Repeat("x", i))
		b.WriteString("]\nbase = \"v\"\nmid = \"{base}{base}\"\ntop = \"{mid}-{base}\"\n\n")
	}

	doc := mustDecode(t, b.String())

	got, err := Resolve(context.Background(), doc, WithConcurrency(8))
	require.NoError(t, err)
	require.Len(t, got, 64)

	for name, fields := range resolved(got) {
		assert.Equal(t, "vv-v", fields["top"], name)
	}
}

func TestResolve_ConcurrentError(t *testing.T) {
	doc := mustDecode(t, `
[ok]
a = "{b}"
b = "c"

[broken]
a = "{b}"
b = "{a}"
`)

	got, err := Resolve(context.Background(), doc, WithConcurrency(4))
	require.ErrorIs(t, err, ErrCyclicReference)
	assert.Nil(t, got)
}

func TestResolve_ConcurrentErrorIsDeterministic(t *testing.T) {
	var b strings.Builder

	b.WriteString("[a_unknown]\nx = \"{missing}\"\n\n")

	for i := range 32 {
		b.WriteString("[m")
		b.WriteString(strings.Repeat("m", i))
		b.WriteString("]\nbase = \"v\"\ntop = \"{base}\"\n\n")
	}

	b.WriteString("[z_cycle]\nx = \"{y}\"\ny = \"{x}\"\n")

	source := b.String()

	for _, jobs := range []int{1, 2, 8, 64} {
		_, err := Resolve(context.Background(), mustDecode(t, source), WithConcurrency(jobs))
		require.ErrorIs(t, err, ErrUnknownReference, "jobs=%d", jobs)
		assert.Contains(t, err.Error(), `section "a_unknown"`, "jobs=%d", jobs)
	}
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := mustDecode(t, "[s]\na = \"{b}\"\nb = \"c\"\n")

	_, err := Resolve(ctx, doc)
	require.ErrorIs(t, err, context.Canceled)
}
