// Package prompt turns a loaded workflow document and the configured prompt
// texts into the concrete system/user message pair sent to the backend.
package prompt

import (
	"fmt"
	"strings"

	"flowscribe/internal/config"
	"flowscribe/internal/workflow"
)

const (
	// FilenamePlaceholder and DocumentPlaceholder are the only two fields
	// substituted into the user template.
	FilenamePlaceholder = "filename"
	DocumentPlaceholder = "workflow_json"

	formatErrorFormat = "user prompt template: %s"
)

// FormatError reports a user template whose substitution syntax is invalid.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return fmt.Sprintf(formatErrorFormat, e.Reason) }

// Bundle is the assembled prompt pair for one document.
type Bundle struct {
	System string
	User   string
}

// Builder assembles prompts from a fixed prompt configuration.
type Builder struct {
	Config config.Prompts
}

// Build copies the system prompt verbatim and substitutes {filename} and
// {workflow_json} into the user template. The embedded document text is never
// sanitized or truncated here; sizing is the backend's concern via num_ctx.
func (builder Builder) Build(document workflow.Document) (Bundle, error) {
	fields := map[string]string{
		FilenamePlaceholder: document.Filename(),
		DocumentPlaceholder: document.Canonical,
	}
	user, err := substitute(builder.Config.UserPromptTemplate, fields)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{System: builder.Config.SystemPrompt, User: user}, nil
}

// substitute expands {name} placeholders. Doubled braces escape to literal
// braces. A placeholder the field map does not know is copied through
// unchanged, and a template that never mentions a known field is fine; only
// an unterminated "{" is a format error.
func substitute(template string, fields map[string]string) (string, error) {
	var output strings.Builder
	for index := 0; index < len(template); index++ {
		character := template[index]
		switch character {
		case '{':
			if index+1 < len(template) && template[index+1] == '{' {
				output.WriteByte('{')
				index++
				continue
			}
			closing := strings.IndexByte(template[index+1:], '}')
			if closing < 0 {
				return "", &FormatError{Reason: fmt.Sprintf("unterminated placeholder at offset %d", index)}
			}
			name := template[index+1 : index+1+closing]
			if value, known := fields[name]; known {
				output.WriteString(value)
			} else {
				output.WriteString(template[index : index+closing+2])
			}
			index += closing + 1
		case '}':
			if index+1 < len(template) && template[index+1] == '}' {
				output.WriteByte('}')
				index++
				continue
			}
			output.WriteByte('}')
		default:
			output.WriteByte(character)
		}
	}
	return output.String(), nil
}
