// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package doctable

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/varset"
)

const marker = "<!--X-->"

func mustSet(t *testing.T, entries ...varset.Entry) *varset.DeclaredSet {
	t.Helper()
	set, err := varset.Load(varset.Source{Name: "test", Defaults: entries})
	require.NoError(t, err)
	return set
}

func names(ns ...string) []varset.Entry {
	out := make([]varset.Entry, len(ns))
	for i, n := range ns {
		out[i] = varset.Entry{Name: n}
	}
	return out
}

func TestSync_TwoColumnExample(t *testing.T) {
	doc := "# Usage\n\nIntro text.\n\n" +
		"<!--X-->\n" +
		"| Variable | Description |\n" +
		"| - | - |\n" +
		"| `foo` | some text |\n" +
		"| `baz` | stale |\n" +
		"<!--X-->\n\nTrailing.\n"

	res, err := Sync(doc, marker, mustSet(t, names("foo", "bar")...), TwoColumn)
	require.NoError(t, err)

	want := "# Usage\n\nIntro text.\n\n" +
		"<!--X-->\n" +
		"| Variable | Description |\n" +
		"| - | - |\n" +
		"| `foo` | some text |\n" +
		"| `bar` |  |\n" +
		"<!--X-->\n\nTrailing.\n"
	if diff := cmp.Diff(want, res.Document); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"bar"}, res.Report.Added)
	assert.Equal(t, []string{"baz"}, res.Report.Removed)
	assert.Equal(t, []string{"bar"}, res.Report.Undocumented)
	assert.Empty(t, res.Report.DefaultChanged)
	assert.NotContains(t, res.Document, "baz")
}

func TestSync_ThreeColumnDefaults(t *testing.T) {
	doc := "<!--X-->\n<!--X-->\n"
	set := mustSet(t,
		varset.Entry{Name: "a", Default: varset.Absent()},
		varset.Entry{Name: "b", Default: varset.Value("")},
		varset.Entry{Name: "c", Default: varset.Value("x")},
	)

	res, err := Sync(doc, marker, set, ThreeColumn)
	require.NoError(t, err)

	want := "<!--X-->\n" +
		"| Variable | Default value | Description |\n" +
		"| - | - | - |\n" +
		"| `a` | *None* |  |\n" +
		"| `b` | `\"\"` |  |\n" +
		"| `c` | ```x``` |  |\n" +
		"<!--X-->\n"
	assert.Equal(t, want, res.Document)
	assert.Equal(t, []string{"a", "b", "c"}, res.Report.Added)
}

func TestSync_ThreeColumnDefaultChange(t *testing.T) {
	doc := "<!--X-->\n" +
		"| Variable | Default value | Description |\n" +
		"| - | - | - |\n" +
		"| `arch` | ```arm64``` | CPU architecture |\n" +
		"| `ami_name` | *None* | Name of the AMI |\n" +
		"<!--X-->\n"
	set := mustSet(t,
		varset.Entry{Name: "ami_name", Default: varset.Absent()},
		varset.Entry{Name: "arch", Default: varset.Value("x86_64")},
	)

	res, err := Sync(doc, marker, set, ThreeColumn)
	require.NoError(t, err)

	assert.Contains(t, res.Document, "| `ami_name` | *None* | Name of the AMI |\n| `arch` | ```x86_64``` | CPU architecture |\n")
	assert.Equal(t, []DefaultChange{{Name: "arch", Previous: "```arm64```", Current: "```x86_64```"}}, res.Report.DefaultChanged)
	assert.Empty(t, res.Report.Added)
	assert.Empty(t, res.Report.Removed)
}

func TestSync_OrderFollowsDeclaredSet(t *testing.T) {
	doc := "<!--X-->\n| Variable | Description |\n| - | - |\n" +
		"| `c` | third |\n| `a` | first |\n| `b` | second |\n<!--X-->"

	res, err := Sync(doc, marker, mustSet(t, names("b", "c", "a")...), TwoColumn)
	require.NoError(t, err)

	ex, err := Extract(res.Document, marker, TwoColumn)
	require.NoError(t, err)
	var got []string
	for _, row := range ex.Rows {
		got = append(got, row.Name+"="+row.Description)
	}
	assert.Equal(t, []string{"b=second", "c=third", "a=first"}, got)
	assert.True(t, strings.HasSuffix(res.Document, "<!--X-->"), "missing final newline is preserved")
}

func TestSync_Idempotent(t *testing.T) {
	doc := "intro\n<!--X-->\n| Variable | Default value | Description |\n| --- | --- | --- |\n" +
		"|`old`|```1```|  gone soon  |\n| `keep` | *None* | Uses a \\| pipe |\n<!--X-->\noutro"
	set := mustSet(t,
		varset.Entry{Name: "keep", Default: varset.Value("a|b")},
		varset.Entry{Name: "new", Default: varset.Value("")},
	)

	first, err := Sync(doc, marker, set, ThreeColumn)
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := Sync(first.Document, marker, set, ThreeColumn)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Document, second.Document)
	assert.True(t, second.Report.Empty())
	assert.Contains(t, second.Document, "| `keep` | ```a\\|b``` | Uses a \\| pipe |")
}

func TestSync_IdempotentBackslashDefaults(t *testing.T) {
	doc := "<!--X-->\n<!--X-->\n"
	set := mustSet(t,
		varset.Entry{Name: "re", Default: varset.Value(`a\|b`)},
		varset.Entry{Name: "dir", Default: varset.Value(`C:\dir\`)},
		varset.Entry{Name: "both", Default: varset.Value(`\\|`)},
	)

	first, err := Sync(doc, marker, set, ThreeColumn)
	require.NoError(t, err)
	assert.Contains(t, first.Document, "| `re` | ```a\\\\|b``` |  |")

	second, err := Sync(first.Document, marker, set, ThreeColumn)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Empty(t, second.Report.DefaultChanged)
	assert.Equal(t, first.Document, second.Document)
}

func TestSync_RegionIsolation(t *testing.T) {
	prefix := "  leading whitespace\r\n\tand tabs\n   <!--X-->"
	suffix := "   <!--X-->   \n\n\n  trailing  "
	doc := prefix + "\n| Variable | Description |\n| - | - |\n| `x` | kept |\n" + suffix

	res, err := Sync(doc, marker, mustSet(t, names("x", "y")...), TwoColumn)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Document, prefix+"\n"))
	assert.True(t, strings.HasSuffix(res.Document, "\n"+suffix))
	assert.Contains(t, res.Document, "| `x` | kept |\n| `y` |  |\n")
}

func TestSync_MarkerMentionedInProseIsIgnored(t *testing.T) {
	doc := "Wrap the table in <!--X--> lines.\n<!--X-->\n<!--X-->\n"

	res, err := Sync(doc, marker, mustSet(t, names("v")...), TwoColumn)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Document, "Wrap the table in <!--X--> lines.\n<!--X-->\n| Variable |"))
}

func TestSync_IndependentMarkers(t *testing.T) {
	doc := "<!--A-->\n<!--A-->\nmiddle\n<!--B-->\n<!--B-->\n"

	first, err := Sync(doc, "<!--A-->", mustSet(t, names("a")...), TwoColumn)
	require.NoError(t, err)
	second, err := Sync(first.Document, "<!--B-->", mustSet(t, names("b")...), ThreeColumn)
	require.NoError(t, err)

	want := "<!--A-->\n| Variable | Description |\n| - | - |\n| `a` |  |\n<!--A-->\nmiddle\n" +
		"<!--B-->\n| Variable | Default value | Description |\n| - | - | - |\n| `b` | *None* |  |\n<!--B-->\n"
	assert.Equal(t, want, second.Document)
}

func TestSync_Errors(t *testing.T) {
	twoColumnTable := "<!--X-->\n| Variable | Description |\n| - | - |\n| `foo` | text |\n<!--X-->\n"

	tests := []struct {
		name  string
		doc   string
		shape Shape
		kind  errors.Kind
	}{
		{"no markers", "plain text\n", TwoColumn, errors.KindRegionNotFound},
		{"one marker", "<!--X-->\n| a | b |\n", TwoColumn, errors.KindRegionNotFound},
		{"three markers", "<!--X-->\n<!--X-->\n<!--X-->\n", TwoColumn, errors.KindMalformedRegion},
		{"two-column table read as three-column", twoColumnTable, ThreeColumn, errors.KindMalformedRegion},
		{"three-column table read as two-column", "<!--X-->\n| V | D | Desc |\n| - | - | - |\n<!--X-->", TwoColumn, errors.KindMalformedRegion},
		{"row cell count mismatch", "<!--X-->\n| V | D | Desc |\n| - | - | - |\n| `a` | text |\n<!--X-->", ThreeColumn, errors.KindMalformedRegion},
		{"header without separator", "<!--X-->\n| Variable | Description |\n<!--X-->", TwoColumn, errors.KindMalformedRegion},
		{"bad separator", "<!--X-->\n| Variable | Description |\n| a | b |\n<!--X-->", TwoColumn, errors.KindMalformedRegion},
		{"row without pipes", "<!--X-->\n| Variable | Description |\n| - | - |\nfree text\n<!--X-->", TwoColumn, errors.KindMalformedRegion},
		{"invalid shape", twoColumnTable, Shape(4), errors.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Sync(tt.doc, marker, mustSet(t, names("foo")...), tt.shape)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.kind, errors.GetKind(err), err.Error())
		})
	}
}

func TestSync_MalformedRowReportsLine(t *testing.T) {
	doc := "title\n\n<!--X-->\n| Variable | Description |\n| - | - |\n\n| `a` | ok |\n| `b` | too | many |\n<!--X-->\n"

	_, err := Sync(doc, marker, mustSet(t, names("a")...), TwoColumn)
	require.Error(t, err)
	attrs := errors.GetAttributes(err)
	assert.Equal(t, 8, attrs["line"])
	assert.Equal(t, marker, attrs["marker"])
}

func TestSync_BlankMarker(t *testing.T) {
	_, err := Sync("\n\n", "  ", mustSet(t), TwoColumn)
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestExtract_Index(t *testing.T) {
	doc := "<!--X-->\n\n| Variable | Default value | Description |\n|:-|:-:|-:|\n" +
		"| ` spaced ` | *None* | first |\n" +
		"| `dup` | ```1``` | one |\n" +
		"| `dup` | ```2``` | two |\n" +
		"|  | x | nameless |\n" +
		"\n<!--X-->\n"

	ex, err := Extract(doc, marker, ThreeColumn)
	require.NoError(t, err)

	want := Index{
		Descriptions: map[string]string{"spaced": "first", "dup": "two"},
		Defaults:     map[string]string{"spaced": "*None*", "dup": "```2```"},
	}
	if diff := cmp.Diff(want, ex.Index); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, ex.Rows, 3)
	assert.Equal(t, 5, ex.Rows[0].Line)
	assert.Equal(t, 1, ex.Span.Line)
}

func TestExtract_EmptyRegion(t *testing.T) {
	ex, err := Extract("<!--X-->\n\n   \n<!--X-->", marker, TwoColumn)
	require.NoError(t, err)
	assert.Empty(t, ex.Rows)
	assert.False(t, ex.Index.Has("anything"))
}

func TestRenderDefault(t *testing.T) {
	assert.Equal(t, "*None*", RenderDefault(varset.Absent()))
	assert.Equal(t, "`\"\"`", RenderDefault(varset.Value("")))
	assert.Equal(t, "```x```", RenderDefault(varset.Value("x")))
	assert.Equal(t, "```a\\|b c```", RenderDefault(varset.Value("a|b\nc")))
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape(2)
	require.NoError(t, err)
	assert.Equal(t, TwoColumn, s)

	s, err = ParseShape(3)
	require.NoError(t, err)
	assert.Equal(t, ThreeColumn, s)
	assert.Equal(t, "three-column", s.String())

	_, err = ParseShape(1)
	assert.Equal(t, errors.KindValidation, errors.GetKind(err))
}

func TestDiff(t *testing.T) {
	before := "a\n<!--X-->\n| `baz` | stale |\n<!--X-->\n"
	after := "a\n<!--X-->\n| `bar` |  |\n<!--X-->\n"

	text := Diff("usage.md", before, after)
	assert.Contains(t, text, "--- usage.md")
	assert.Contains(t, text, "+++ usage.md (generated)")
	assert.Contains(t, text, "-| `baz` | stale |")
	assert.Contains(t, text, "+| `bar` |  |")

	assert.Empty(t, Diff("usage.md", before, before))
}
