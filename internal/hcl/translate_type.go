package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts a column type expression into its cty.Type.
// Columns need a concrete type, so `any` is rejected, as is any
// constructor other than list, set and map.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.NilType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		keyword := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a primitive.", "keyword", keyword)
		switch keyword {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.NilType, fmt.Errorf("column types must be concrete, 'any' is not allowed")
		default:
			return cty.NilType, fmt.Errorf("unknown primitive type %q", keyword)
		}

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a constructor.", "call", v.Name)
		if len(v.Args) != 1 {
			return cty.NilType, fmt.Errorf("type constructor %s() requires exactly one argument, got %d", v.Name, len(v.Args))
		}
		elem, err := typeExprToCtyType(ctx, v.Args[0])
		if err != nil {
			return cty.NilType, fmt.Errorf("in %s(): %w", v.Name, err)
		}
		switch v.Name {
		case "list":
			return cty.List(elem), nil
		case "set":
			return cty.Set(elem), nil
		case "map":
			return cty.Map(elem), nil
		default:
			return cty.NilType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	default:
		return cty.NilType, fmt.Errorf("unsupported expression for type definition: %T", expr)
	}
}
