package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/staticpipe/internal/config"
)

// translateInput converts an input block into the agnostic model.
func (l *Loader) translateInput(ctx context.Context, b *inputBlock) (*config.Input, error) {
	typ, err := typeExprToCtyType(ctx, b.Type)
	if err != nil {
		rng := b.Type.Range()
		return nil, fmt.Errorf("%s: input %q: %w", rng.String(), b.Name, err)
	}
	return &config.Input{
		Name:        b.Name,
		Type:        typ,
		Description: b.Description,
		DeclRange:   b.Type.Range(),
	}, nil
}

// translateStep converts a step block into the agnostic model.
func (l *Loader) translateStep(b *stepBlock) (*config.Step, error) {
	attrs, diags := b.Arguments.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("step %q %q: %w", b.Kind, b.Name, diags)
	}

	s := &config.Step{
		Kind:      b.Kind,
		Name:      b.Name,
		Arguments: make(map[string]hcl.Expression, len(attrs)),
		DeclRange: b.Arguments.MissingItemRange(),
	}
	for name, attr := range attrs {
		s.Arguments[name] = attr.Expr
	}
	if b.Options != nil {
		s.Options = b.Options.Body
	}
	return s, nil
}

// translateOutput converts an output block into the agnostic model.
func (l *Loader) translateOutput(b *outputBlock) *config.Output {
	return &config.Output{
		Name:        b.Name,
		Value:       b.Value,
		Description: b.Description,
		DeclRange:   b.Value.Range(),
	}
}
