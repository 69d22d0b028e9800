package skills

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const responseSchema = `{
  "type": "array",
  "items": {"type": ["string", "number", "boolean"]}
}`

var compiledSchema = mustCompileSchema(responseSchema)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile skills response schema: %v", err))
	}
	return schema
}

// StripCodeFences removes Markdown code-fence markers and surrounding space.
func StripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ParseResponse accepts a model reply that is a JSON array of scalars,
// optionally wrapped in code fences, and returns its trimmed, non-empty
// string forms.
func ParseResponse(raw string) ([]string, error) {
	payload := StripCodeFences(raw)
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}

	result, err := compiledSchema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("payload does not match schema: %s", strings.Join(msgs, "; "))
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			s = string(item)
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
