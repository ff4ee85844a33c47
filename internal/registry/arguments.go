package registry

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/zclconf/go-cty/cty"
)

// reservedOptionsBlock is the nested block that carries producer options.
const reservedOptionsBlock = "options"

// ColumnType is the cty capsule type wrapping a recon.Column during HCL
// evaluation.
var ColumnType = cty.Capsule("column", reflect.TypeOf(recon.Column{}))

// ColumnVal wraps c in a capsule value.
func ColumnVal(c recon.Column) cty.Value {
	return cty.CapsuleVal(ColumnType, &c)
}

// ColumnFromVal unwraps a capsule made by ColumnVal.
func ColumnFromVal(v cty.Value) (recon.Column, bool) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(ColumnType) {
		return recon.Column{}, false
	}
	return *v.EncapsulatedValue().(*recon.Column), true
}

// Arguments are the evaluated attributes of one description step.
type Arguments struct {
	// Step is the step's description address, e.g. `step.ffm.ctr`.
	Step    string
	values  map[string]cty.Value
	options hcl.Body
}

// NewArguments wraps evaluated attribute values and the optional options body.
func NewArguments(step string, values map[string]cty.Value, options hcl.Body) *Arguments {
	return &Arguments{Step: step, values: values, options: options}
}

// Column returns the single column held by the named attribute.
func (a *Arguments) Column(name string) (recon.Column, error) {
	v, ok := a.values[name]
	if !ok {
		return recon.Column{}, fmt.Errorf("%w: %s: missing argument %q", recon.ErrConfiguration, a.Step, name)
	}
	c, ok := ColumnFromVal(v)
	if !ok {
		return recon.Column{}, fmt.Errorf("%w: %s: argument %q must reference a single column, got %s",
			recon.ErrConfiguration, a.Step, name, v.Type().FriendlyName())
	}
	return c, nil
}

// Columns returns the columns held by the named list or tuple attribute, in
// order.
func (a *Arguments) Columns(name string) ([]recon.Column, error) {
	v, ok := a.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing argument %q", recon.ErrConfiguration, a.Step, name)
	}
	ty := v.Type()
	if v.IsNull() || !v.IsKnown() || !(ty.IsTupleType() || ty.IsListType()) {
		return nil, fmt.Errorf("%w: %s: argument %q must be a list of columns, got %s",
			recon.ErrConfiguration, a.Step, name, ty.FriendlyName())
	}

	out := make([]recon.Column, 0, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		idx, elem := it.Element()
		c, ok := ColumnFromVal(elem)
		if !ok {
			return nil, fmt.Errorf("%w: %s: element %s of argument %q is not a column",
				recon.ErrConfiguration, a.Step, idx.AsBigFloat().String(), name)
		}
		out = append(out, c)
	}
	return out, nil
}

// DecodeOptions decodes the step's options block into target, which must be
// a pointer to a struct with hcl tags. Fields missing from the block keep
// their current values. A step without an options block leaves target as is.
func (a *Arguments) DecodeOptions(target any) error {
	if a.options == nil {
		return nil
	}
	if diags := gohcl.DecodeBody(a.options, nil, target); diags.HasErrors() {
		return fmt.Errorf("%w: %s: options: %w", recon.ErrConfiguration, a.Step, diags)
	}
	return nil
}
