// Package specfile builds reshape Entities from declarative YAML or JSON
// documents. Everything a document can express goes through the same Expose
// path as hand-built definitions, so malformed specifications fail with the
// same definition errors. Function rules and predicates are not expressible
// in files; attach them in code after loading.
package specfile

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	reshape "github.com/mlens/reshape"
)

// Document is the file form of one or more entity definitions. Entities may
// reference earlier entities in the same document by name through "using".
type Document struct {
	Entities []EntityDoc `yaml:"entities" json:"entities"`
}

// EntityDoc declares a single entity.
type EntityDoc struct {
	Name    string              `yaml:"name" json:"name"`
	Discard []string            `yaml:"discard" json:"discard"`
	Freeze  bool                `yaml:"freeze" json:"freeze"`
	Fields  map[string]FieldDoc `yaml:"fields" json:"fields"`
}

// FieldDoc declares one field rule. It mirrors reshape.Field except that
// Using names another entity of the document instead of holding a reference.
type FieldDoc struct {
	As      string   `yaml:"as" json:"as"`
	Get     string   `yaml:"get" json:"get"`
	Value   any      `yaml:"value" json:"value"`
	Omit    []string `yaml:"omit" json:"omit"`
	Type    string   `yaml:"type" json:"type"`
	Default any      `yaml:"default" json:"default"`
	Using   string   `yaml:"using" json:"using"`
}

// DecodeYAML builds all entities of a YAML document, keyed by name.
func DecodeYAML(data []byte) (map[string]*reshape.Entity, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, reshape.AppendIssues(nil, reshape.Issue{
			Code: reshape.CodeBadSpec, Message: "invalid YAML document", Cause: err,
		})
	}
	return Build(doc)
}

// DecodeJSON builds all entities of a JSON document, keyed by name.
func DecodeJSON(data []byte) (map[string]*reshape.Entity, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, reshape.AppendIssues(nil, reshape.Issue{
			Code: reshape.CodeBadSpec, Message: "invalid JSON document", Cause: err,
		})
	}
	return Build(doc)
}

// Build materializes a decoded document. Entities are built in declaration
// order; a "using" reference must point at an entity declared earlier.
func Build(doc Document) (map[string]*reshape.Entity, error) {
	built := make(map[string]*reshape.Entity, len(doc.Entities))
	for _, ed := range doc.Entities {
		if ed.Name == "" {
			return nil, reshape.AppendIssues(nil, reshape.Issue{
				Code: reshape.CodeBadSpec, Message: "entity without a name",
			})
		}
		if _, dup := built[ed.Name]; dup {
			return nil, reshape.AppendIssues(nil, reshape.Issue{
				Code: reshape.CodeBadSpec, Message: fmt.Sprintf("duplicate entity %q", ed.Name),
			})
		}
		e, err := buildEntity(ed, built)
		if err != nil {
			return nil, err
		}
		built[ed.Name] = e
	}
	return built, nil
}

func buildEntity(ed EntityDoc, built map[string]*reshape.Entity) (*reshape.Entity, error) {
	spec := make(reshape.Spec, len(ed.Fields))
	for name, fd := range ed.Fields {
		f := reshape.Field{
			As:      fd.As,
			Get:     fd.Get,
			Value:   fd.Value,
			Omit:    fd.Omit,
			Type:    fd.Type,
			Default: fd.Default,
		}
		if fd.Using != "" {
			ref, ok := built[fd.Using]
			if !ok {
				return nil, reshape.AppendIssues(nil, reshape.Issue{
					Path: name, Code: reshape.CodeBadUsing,
					Message: fmt.Sprintf("entity %q: unknown using target %q", ed.Name, fd.Using),
				})
			}
			f.Using = ref
		}
		spec[name] = f
	}
	e, err := reshape.FromSpec(ed.Name, spec)
	if err != nil {
		return nil, err
	}
	if ed.Discard != nil {
		if err := e.Discard(ed.Discard...); err != nil {
			return nil, err
		}
	}
	if ed.Freeze {
		e.Freeze()
	}
	return e, nil
}
