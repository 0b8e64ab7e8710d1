package load

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strings"

	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// parseHCL reads top-level attributes and unlabeled blocks of an HCL file:
//
//	title = "Swipe"
//	themeConfig {
//	  nav     = [{ text = "GitHub", link = "https://github.com/swipe-io/swipe" }]
//	  sidebar = { "/" = ["intro", "transport"] }
//	}
//
// Source order is kept. When withEnv is set, templates may read environment
// variables as env.NAME.
func parseHCL(data []byte, filename string, withEnv bool) (any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.New("unexpected HCL body type")
	}

	var ctx *hcl.EvalContext
	if withEnv {
		ctx = &hcl.EvalContext{Variables: map[string]cty.Value{"env": environObject()}}
	}
	return fromHCLBody(body, ctx)
}

func fromHCLBody(body *hclsyntax.Body, ctx *hcl.EvalContext) (siteconfig.Record, error) {
	type entry struct {
		offset int
		field  siteconfig.Field
	}
	entries := make([]entry, 0, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		v, err := fromHCLExpr(attr.Expr, ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		entries = append(entries, entry{attr.SrcRange.Start.Byte, siteconfig.Field{Key: name, Value: v}})
	}

	seenBlocks := make(map[string]struct{}, len(body.Blocks))
	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return nil, fmt.Errorf("%s: block labels are not supported", block.DefRange().String())
		}
		if _, dup := seenBlocks[block.Type]; dup {
			return nil, fmt.Errorf("%s: duplicate %q block", block.DefRange().String(), block.Type)
		}
		if _, clash := body.Attributes[block.Type]; clash {
			return nil, fmt.Errorf("%s: %q is defined both as attribute and block", block.DefRange().String(), block.Type)
		}
		seenBlocks[block.Type] = struct{}{}

		nested, err := fromHCLBody(block.Body, ctx)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{block.TypeRange.Start.Byte, siteconfig.Field{Key: block.Type, Value: nested}})
	}

	slices.SortFunc(entries, func(a, b entry) int { return a.offset - b.offset })
	rec := make(siteconfig.Record, len(entries))
	for i, e := range entries {
		rec[i] = e.field
	}
	return rec, nil
}

func fromHCLExpr(expr hclsyntax.Expression, ctx *hcl.EvalContext) (any, error) {
	switch e := expr.(type) {
	case *hclsyntax.ObjectConsExpr:
		rec := make(siteconfig.Record, 0, len(e.Items))
		for _, item := range e.Items {
			kv, diags := item.KeyExpr.Value(ctx)
			if diags.HasErrors() {
				return nil, diags
			}
			if kv.IsNull() || kv.Type() != cty.String {
				return nil, fmt.Errorf("%s: object keys must be strings", item.KeyExpr.Range().String())
			}
			v, err := fromHCLExpr(item.ValueExpr, ctx)
			if err != nil {
				return nil, err
			}
			rec = append(rec, siteconfig.Field{Key: kv.AsString(), Value: v})
		}
		return rec, nil
	case *hclsyntax.TupleConsExpr:
		out := make([]any, 0, len(e.Exprs))
		for _, x := range e.Exprs {
			v, err := fromHCLExpr(x, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	v, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}
	return fromCty(v)
}

func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case t.IsListType(), t.IsTupleType(), t.IsSetType():
		elems := v.AsValueSlice()
		out := make([]any, 0, len(elems))
		for _, ev := range elems {
			x, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case t.IsMapType(), t.IsObjectType():
		m := v.AsValueMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		rec := make(siteconfig.Record, 0, len(keys))
		for _, k := range keys {
			x, err := fromCty(m[k])
			if err != nil {
				return nil, err
			}
			rec = append(rec, siteconfig.Field{Key: k, Value: x})
		}
		return rec, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", t.FriendlyName())
}

func environObject() cty.Value {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vars)
}
