// Package render writes resolved plans and registry listings for humans
// (table, markdown) and machines (json, yaml).
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
	"gopkg.in/yaml.v3"
)

// Format names an output format.
type Format string

const (
	Table    Format = "table"
	Markdown Format = "markdown"
	JSON     Format = "json"
	YAML     Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{Table, Markdown, JSON, YAML}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q: must be one of %v", s, Formats)
}

// Plan writes p to w in the given format.
func Plan(w io.Writer, p recon.Plan, f Format) error {
	switch f {
	case JSON:
		return renderJSON(w, p)
	case YAML:
		return renderYAML(w, p)
	case Table, Markdown:
		t := newTable(w)
		t.AppendHeader(table.Row{"#", "Step", "Kind", "Inputs", "Outputs"})
		for i, s := range p.Steps {
			t.AppendRow(table.Row{i + 1, s.Address, s.Kind, strings.Join(s.Inputs, ", "), strings.Join(s.Outputs, ", ")})
		}
		t.AppendFooter(table.Row{"", "", "", "Result", strings.Join(p.Outputs, ", ")})
		return flush(t, f)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// kindView is the data-only shape of a registered step kind.
type kindView struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Arguments   []string `json:"arguments" yaml:"arguments"`
	Outputs     []string `json:"outputs" yaml:"outputs"`
}

// Kinds writes the registered step kinds to w in the given format. Optional
// arguments are marked with a trailing "?", list arguments with "[]".
func Kinds(w io.Writer, kinds []*registry.StepKind, f Format) error {
	views := make([]kindView, len(kinds))
	for i, k := range kinds {
		views[i] = kindView{Name: k.Name, Description: k.Description, Outputs: append([]string(nil), k.Outputs...)}
		for _, a := range k.Arguments {
			name := a.Name
			if a.Many {
				name += "[]"
			}
			if !a.Required {
				name += "?"
			}
			views[i].Arguments = append(views[i].Arguments, name)
		}
	}

	switch f {
	case JSON:
		return renderJSON(w, views)
	case YAML:
		return renderYAML(w, views)
	case Table, Markdown:
		t := newTable(w)
		t.AppendHeader(table.Row{"Kind", "Arguments", "Outputs", "Description"})
		for _, v := range views {
			t.AppendRow(table.Row{v.Name, strings.Join(v.Arguments, ", "), strings.Join(v.Outputs, ", "), v.Description})
		}
		return flush(t, f)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func flush(t table.Writer, f Format) error {
	if f == Markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
