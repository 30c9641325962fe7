// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package source

import (
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"grimm.is/vardoc/internal/errors"
	"grimm.is/vardoc/internal/varset"
)

func decodeHCL(name string, data []byte, role Role) (varset.Source, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return varset.Source{}, errors.Wrap(diags, errors.KindMalformedSource, "invalid HCL")
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return varset.Source{}, malformed("unexpected HCL body %T", file.Body)
	}

	src := varset.Source{Name: name}
	if role == RoleTemplate {
		for _, block := range body.Blocks {
			if block.Type != "variable" {
				continue
			}
			if len(block.Labels) != 1 {
				return varset.Source{}, malformed("line %d: variable block needs exactly one label", block.TypeRange.Start.Line)
			}
			v := block.Labels[0]
			src.Names = append(src.Names, v)
			if attr, ok := block.Body.Attributes["default"]; ok {
				src.Defaults = append(src.Defaults, varset.Entry{Name: v, Default: exprDefault(attr.Expr, data)})
			}
		}
		return src, nil
	}

	if len(body.Blocks) > 0 {
		b := body.Blocks[0]
		return varset.Source{}, malformed("line %d: unexpected %q block in defaults file", b.TypeRange.Start.Line, b.Type)
	}
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	for _, attr := range attrs {
		src.Defaults = append(src.Defaults, varset.Entry{Name: attr.Name, Default: exprDefault(attr.Expr, data)})
	}
	return src, nil
}

// exprDefault evaluates expr without variables or functions. Expressions
// that need an evaluation context keep their source text.
func exprDefault(expr hclsyntax.Expression, data []byte) varset.Default {
	raw := func() varset.Default {
		return varset.Value(strings.TrimSpace(string(expr.Range().SliceBytes(data))))
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() || !v.IsWhollyKnown() {
		return raw()
	}
	v, _ = v.UnmarkDeep()
	if v.IsNull() {
		return varset.Absent()
	}

	switch v.Type() {
	case cty.String:
		return varset.Value(v.AsString())
	case cty.Number:
		return varset.Value(v.AsBigFloat().Text('f', -1))
	case cty.Bool:
		if v.True() {
			return varset.Value("true")
		}
		return varset.Value("false")
	}

	out, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return raw()
	}
	return varset.Value(string(out))
}
