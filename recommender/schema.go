package recommender

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaType is a JSON type name
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema describes the structured output the model must produce.
// It marshals to a JSON Schema document, so the same value drives both the
// vendor request and the local validation of the answer.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// ResponseSchema is the recommendation contract; free text is requested in language
func ResponseSchema(language string) *Schema {
	in := fmt.Sprintf(" (IN %s)", strings.ToUpper(language))
	str := func(desc string) *Schema {
		s := &Schema{Type: TypeString}
		if desc != "" {
			s.Description = desc + in
		}
		return s
	}

	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"analysis": str("Detailed analysis of the user's skin state based on inputs."),
			"causes":   str("Potential causes for their skin concerns."),
			"strategy": str("The strategic approach to treating their skin (e.g., 'Focus on barrier repair')."),
			"routine": {
				Type: TypeObject,
				Properties: map[string]*Schema{
					"morning": str("Step-by-step morning instructions."),
					"evening": str("Step-by-step evening instructions."),
				},
				Required: []string{"morning", "evening"},
			},
			"productIds": {
				Type:        TypeArray,
				Items:       &Schema{Type: TypeString},
				Description: "List of EXACT IDs of the products selected from the inventory.",
			},
			"reasoning": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"productId":   {Type: TypeString},
						"explanation": str("Why this product was chosen."),
					},
					Required: []string{"productId", "explanation"},
				},
				Description: "List containing an explanation for each selected product.",
			},
		},
		Required: []string{"analysis", "causes", "strategy", "routine", "productIds", "reasoning"},
	}
}

const schemaURL = "https://skinbox.local/recommendation.schema.json"

func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	doc, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode response schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("load response schema: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}
	return compiled, nil
}
