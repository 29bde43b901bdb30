package rules_test

import (
	"testing"

	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/segment"
	"github.com/stretchr/testify/require"
)

// testRegistry builds the feature set shared by the engine tests:
//
//	sym(scalar)      — a display letter so assertions can name segments
//	voice(binary), nasal(privative), vocoid(privative), high(binary)
//	Place(node) ─ labial(privative), coronal(privative)
func testRegistry(t testing.TB) *feature.Registry {
	t.Helper()
	r := feature.New()
	for _, f := range []feature.Feature{
		{Name: "sym", Type: feature.Scalar},
		{Name: "voice", Type: feature.Binary},
		{Name: "nasal", Type: feature.Privative},
		{Name: "vocoid", Type: feature.Privative},
		{Name: "high", Type: feature.Binary},
		{Name: "labial", Type: feature.Privative},
		{Name: "coronal", Type: feature.Privative},
	} {
		require.NoError(t, r.Add(f))
	}
	require.NoError(t, r.Add(feature.Feature{
		Name: "Place", Type: feature.Node, Children: []string{"labial", "coronal"},
	}))

	return r
}

// seg builds a bundle labeled with sym and any extra feature values.
func seg(t testing.TB, reg *feature.Registry, sym string, extra map[string]interface{}) *segment.Bundle {
	t.Helper()
	s := segment.New(reg)
	require.NoError(t, s.Set("sym", sym))
	for name, v := range extra {
		require.NoError(t, s.Set(name, v))
	}

	return s
}

// word is a convenience for building a word out of bundles.
func word(segs ...*segment.Bundle) []segment.Segment {
	out := make([]segment.Segment, len(segs))
	for i, s := range segs {
		out[i] = s
	}

	return out
}

// syms flattens a word back into its sym labels for readable assertions.
func syms(w []segment.Segment) []string {
	out := make([]string, 0, len(w))
	for _, s := range w {
		v := s.Get("sym")
		if str, ok := v.(string); ok {
			out = append(out, str)
		} else {
			out = append(out, "?")
		}
	}

	return out
}

// snapshotWord captures every segment's AllValues for bit-for-bit
// comparisons around rollback.
func snapshotWord(w []segment.Segment) []map[string]feature.Value {
	out := make([]map[string]feature.Value, len(w))
	for i, s := range w {
		out[i] = s.AllValues()
	}

	return out
}
