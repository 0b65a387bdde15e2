package llm

import (
	"fmt"
	"strings"
)

// EnvelopeKey is the single top-level key every structured response is
// wrapped in.
const EnvelopeKey = "result"

const jsonRules = `JSON RULES
- Output JSON only: no prose, no markdown, no code fences.
- Use double quotes for every key and every string value.
- Do not add comments or trailing commas.
- Write numbers as plain literals (0.5, never .5).
- Escape quotes and newlines inside string values.`

// EnvelopePrompt appends the response-format instructions to prompt. The model
// is told to wrap its answer as {"result": ...} conforming to schema.
func EnvelopePrompt(prompt, schema string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(prompt))
	b.WriteString("\n\nRESPONSE FORMAT\n")
	if strings.TrimSpace(schema) == "" {
		fmt.Fprintf(&b, "Respond with one JSON object of the form {%q: <value>} where <value> is the JSON requested above.\n", EnvelopeKey)
	} else {
		fmt.Fprintf(&b, "Respond with one JSON object of the form {%q: <value>} where <value> conforms to this schema:\n", EnvelopeKey)
		b.WriteString(strings.TrimSpace(schema))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(jsonRules)
	return b.String()
}

// BatchPrompt combines several independent requests into one prompt. The
// model is asked to answer with a single object keyed by request ID.
func BatchPrompt(reqs []BatchRequest) string {
	var b strings.Builder
	b.WriteString("Process each of the following analyses independently.\n")
	for i, r := range reqs {
		fmt.Fprintf(&b, "\nANALYSIS %d\nID: %s\nPROMPT:\n%s\nSCHEMA:\n%s\n",
			i+1, r.ID, strings.TrimSpace(r.Prompt), strings.TrimSpace(r.Schema))
	}

	b.WriteString("\nRESPONSE FORMAT\nReturn one JSON object whose keys are the analysis IDs above and whose values are the matching results:\n{")
	for i, r := range reqs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: <result for %s>", r.ID, r.ID)
	}
	b.WriteString("}\n\n")
	b.WriteString(jsonRules)
	return b.String()
}
