package load

import (
	"bytes"
	"encoding/json"
	"fmt"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Encode renders cfg in the raw schema so that loading the output with the
// default options and building it again yields an equal configuration.
// Dollar signs that the loader would expand are escaped as $$.
func Encode(cfg *siteconfig.SiteConfig, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return []byte(escapeEnv(buf.String())), nil
	case FormatJSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return []byte(escapeEnv(string(out)) + "\n"), nil
	case FormatVuePress:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return fmt.Appendf(nil, "module.exports = %s;\n", escapeEnv(string(out))), nil
	case FormatHCL:
		return encodeHCL(cfg.ToRaw())
	default:
		return nil, foundationerrors.ValidationError("unknown configuration format").
			WithContext("format", string(format)).
			Build()
	}
}

// encodeHCL writes scalars and lists as attributes and nested records as
// blocks, the same layout parseHCL reads.
func encodeHCL(raw siteconfig.Record) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	if err := writeHCLBody(f.Body(), raw); err != nil {
		return nil, err
	}
	return hclwrite.Format(f.Bytes()), nil
}

func writeHCLBody(body *hclwrite.Body, rec siteconfig.Record) error {
	for _, field := range rec {
		if nested, ok := field.Value.(siteconfig.Record); ok && blockable(field.Key, nested) {
			body.AppendNewline()
			block := body.AppendNewBlock(field.Key, nil)
			if err := writeHCLBody(block.Body(), nested); err != nil {
				return err
			}
			continue
		}
		tokens, err := hclTokens(field.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.Key, err)
		}
		body.SetAttributeRaw(field.Key, tokens)
	}
	return nil
}

// blockable reports whether a nested record can be written as a block, which
// needs identifier names throughout.
func blockable(name string, rec siteconfig.Record) bool {
	if !hclsyntax.ValidIdentifier(name) {
		return false
	}
	for _, f := range rec {
		if !hclsyntax.ValidIdentifier(f.Key) {
			return false
		}
	}
	return true
}

func hclTokens(v any) (hclwrite.Tokens, error) {
	switch x := v.(type) {
	case siteconfig.Record:
		attrs := make([]hclwrite.ObjectAttrTokens, 0, len(x))
		for _, f := range x {
			value, err := hclTokens(f.Value)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, hclwrite.ObjectAttrTokens{Name: hclKey(f.Key), Value: value})
		}
		return hclwrite.TokensForObject(attrs), nil
	case []any:
		elems := make([]hclwrite.Tokens, 0, len(x))
		for _, e := range x {
			t, err := hclTokens(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, t)
		}
		return hclwrite.TokensForTuple(elems), nil
	case string:
		return hclwrite.TokensForValue(cty.StringVal(x)), nil
	case bool:
		return hclwrite.TokensForValue(cty.BoolVal(x)), nil
	case nil:
		return hclwrite.TokensForValue(cty.NullVal(cty.DynamicPseudoType)), nil
	}
	return nil, fmt.Errorf("cannot encode %T as HCL", v)
}

func hclKey(k string) hclwrite.Tokens {
	if hclsyntax.ValidIdentifier(k) {
		return hclwrite.TokensForIdentifier(k)
	}
	return hclwrite.TokensForValue(cty.StringVal(k))
}
