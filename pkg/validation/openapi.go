package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/jsonschema"
)

const (
	openAPIVersion  = "3.0.3"
	documentVersion = "1.0.0"
)

// Schema converts an exported document into a kin-openapi schema.
func Schema(doc jsonschema.Document) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	if out.Properties == nil {
		out.Properties = make(openapi3.Schemas)
	}
	if doc.Properties != nil {
		for _, name := range doc.Properties.Keys() {
			prop, _ := doc.Properties.Get(name)
			out.Properties[name] = openapi3.NewSchemaRef("", propertySchema(prop))
		}
	}
	if len(doc.Required) > 0 {
		out.Required = append([]string(nil), doc.Required...)
	}
	return out
}

func propertySchema(prop jsonschema.Property) *openapi3.Schema {
	var s *openapi3.Schema
	if prop.Type == "number" {
		s = openapi3.NewFloat64Schema()
	} else {
		s = openapi3.NewStringSchema()
	}
	s.Title = prop.Title
	s.Description = prop.Description
	s.Pattern = prop.Pattern
	if prop.Minimum != nil {
		v := *prop.Minimum
		s.Min = &v
	}
	if prop.Maximum != nil {
		v := *prop.Maximum
		s.Max = &v
	}
	if prop.MinLength != nil && *prop.MinLength > 0 {
		s.MinLength = uint64(*prop.MinLength)
	}
	if prop.MaxLength != nil && *prop.MaxLength >= 0 {
		v := uint64(*prop.MaxLength)
		s.MaxLength = &v
	}
	if len(prop.Enum) > 0 {
		s.Enum = make([]any, 0, len(prop.Enum))
		for _, value := range prop.Enum {
			s.Enum = append(s.Enum, value)
		}
	}
	return s
}

// OpenAPIComponents wraps the exported schema in an OpenAPI 3 document under
// components.schemas[name]. The document is validated before it is returned.
func OpenAPIComponents(ctx context.Context, doc jsonschema.Document, name string) (*openapi3.T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("validation: component name is required")
	}
	out := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   name,
			Version: documentVersion,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				name: openapi3.NewSchemaRef("", Schema(doc)),
			},
		},
	}
	if err := out.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validation: openapi document: %w", err)
	}
	return out, nil
}
