package load

import (
	"errors"
	"fmt"
	"regexp"

	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	"github.com/dop251/goja/token"
)

// The goja parser reads ES5+ scripts, not ES modules. Import lines are blanked
// and "export default" becomes a module.exports assignment; both keep line
// numbers intact for parser errors.
var (
	importLine    = regexp.MustCompile(`(?m)^[ \t]*import[ \t][^\n]*$`)
	exportDefault = regexp.MustCompile(`(?m)^([ \t]*)export[ \t]+default\b`)
)

// parseVuePress reads a site config module such as docs/.vuepress/config.js.
// The exported value must be an object literal, optionally wrapped in a
// helper call like defineConfig({...}) or bound to a top-level const first.
// Nothing is executed: values are read statically from the syntax tree.
func parseVuePress(data []byte, filename string) (any, error) {
	src := importLine.ReplaceAllString(string(data), "")
	src = exportDefault.ReplaceAllString(src, "${1}module.exports =")

	program, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return nil, err
	}

	bindings := make(map[string]ast.Expression)
	var exported ast.Expression
	for _, stmt := range program.Body {
		switch s := stmt.(type) {
		case *ast.VariableStatement:
			collectBindings(bindings, s.List)
		case *ast.LexicalDeclaration:
			collectBindings(bindings, s.List)
		case *ast.ExpressionStatement:
			if assign, ok := s.Expression.(*ast.AssignExpression); ok && assign.Operator == token.ASSIGN && isModuleExports(assign.Left) {
				exported = assign.Right
			}
		}
	}
	if exported == nil {
		return nil, errors.New("no module.exports or export default statement found")
	}

	exported = unwrapConfig(exported, bindings)
	if _, ok := exported.(*ast.ObjectLiteral); !ok {
		return nil, errors.New("exported value is not an object literal")
	}
	return fromJSExpr(exported)
}

func collectBindings(into map[string]ast.Expression, list []*ast.Binding) {
	for _, b := range list {
		if id, ok := b.Target.(*ast.Identifier); ok && b.Initializer != nil {
			into[id.Name.String()] = b.Initializer
		}
	}
}

func isModuleExports(expr ast.Expression) bool {
	dot, ok := expr.(*ast.DotExpression)
	if !ok || dot.Identifier.Name != "exports" {
		return false
	}
	root, ok := dot.Left.(*ast.Identifier)
	return ok && root.Name == "module"
}

// unwrapConfig follows defineConfig(x) calls and references to top-level
// bindings until it reaches something else.
func unwrapConfig(expr ast.Expression, bindings map[string]ast.Expression) ast.Expression {
	for range len(bindings) + 8 {
		switch e := expr.(type) {
		case *ast.CallExpression:
			if _, named := e.Callee.(*ast.Identifier); !named || len(e.ArgumentList) != 1 {
				return expr
			}
			expr = e.ArgumentList[0]
		case *ast.Identifier:
			next, ok := bindings[e.Name.String()]
			if !ok {
				return expr
			}
			expr = next
		default:
			return expr
		}
	}
	return expr
}

// fromJSExpr converts a literal expression into the raw form. Anything that
// would need evaluation is rejected.
func fromJSExpr(expr ast.Expression) (any, error) {
	switch e := expr.(type) {
	case *ast.ObjectLiteral:
		rec := make(siteconfig.Record, 0, len(e.Value))
		for _, prop := range e.Value {
			keyed, ok := prop.(*ast.PropertyKeyed)
			if !ok || keyed.Computed || keyed.Kind != ast.PropertyKindValue {
				return nil, fmt.Errorf("offset %d: only plain key: value properties are supported", prop.Idx0())
			}
			key, err := jsKey(keyed.Key)
			if err != nil {
				return nil, err
			}
			v, err := fromJSExpr(keyed.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			rec = append(rec, siteconfig.Field{Key: key, Value: v})
		}
		return rec, nil
	case *ast.ArrayLiteral:
		out := make([]any, 0, len(e.Value))
		for i, x := range e.Value {
			if x == nil {
				return nil, fmt.Errorf("[%d]: array holes are not supported", i)
			}
			v, err := fromJSExpr(x)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, v)
		}
		return out, nil
	case *ast.StringLiteral:
		return e.Value.String(), nil
	case *ast.TemplateLiteral:
		if e.Tag != nil || len(e.Expressions) > 0 {
			return nil, fmt.Errorf("offset %d: template literals with substitutions are not supported", e.Idx0())
		}
		var s string
		for _, el := range e.Elements {
			s += el.Parsed.String()
		}
		return s, nil
	case *ast.NumberLiteral:
		return e.Value, nil
	case *ast.BooleanLiteral:
		return e.Value, nil
	case *ast.NullLiteral:
		return nil, nil
	case *ast.UnaryExpression:
		if n, ok := e.Operand.(*ast.NumberLiteral); ok && e.Operator == token.MINUS {
			switch v := n.Value.(type) {
			case int64:
				return -v, nil
			case float64:
				return -v, nil
			}
		}
	}
	return nil, fmt.Errorf("offset %d: unsupported expression %T", expr.Idx0(), expr)
}

func jsKey(expr ast.Expression) (string, error) {
	switch k := expr.(type) {
	case *ast.StringLiteral:
		return k.Value.String(), nil
	case *ast.Identifier:
		return k.Name.String(), nil
	case *ast.NumberLiteral:
		return k.Literal, nil
	}
	return "", fmt.Errorf("offset %d: unsupported property key %T", expr.Idx0(), expr)
}
