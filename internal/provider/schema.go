package provider

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// decisionSchema constrains structured replies. The same document is
// sent to the API as the response_format schema and compiled locally
// to validate what comes back.
const decisionSchema = `{
  "type": "object",
  "properties": {
    "action": {
      "type": "string",
      "enum": ["fold", "check", "call", "raise"]
    },
    "amount": {
      "type": ["integer", "null"]
    },
    "reasoning": {
      "type": "string"
    },
    "confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    }
  },
  "required": ["action", "reasoning", "confidence"],
  "additionalProperties": false
}`

var compiledSchema = jsonschema.MustCompileString("decision.json", decisionSchema)

// parseStructured decodes and validates a structured reply body.
func parseStructured(content string) (Decision, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader([]byte(content)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return Decision{}, fmt.Errorf("decode reply: %w", err)
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return Decision{}, fmt.Errorf("validate reply: %w", err)
	}
	var d Decision
	if err := json.Unmarshal([]byte(content), &d); err != nil {
		return Decision{}, fmt.Errorf("unmarshal reply: %w", err)
	}
	return d, nil
}
