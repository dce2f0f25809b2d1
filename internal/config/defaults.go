package config

const (
	defaultOutputDirectory = "generated"
	defaultPromptProfile   = "n8n-doc"
	defaultLLMHost         = "http://localhost:11434"
	defaultLLMModel        = "llama3.2:1b"
)

// DefaultSystemPrompt instructs the model how to document a workflow when no
// profile or override supplies a system prompt.
const DefaultSystemPrompt = "You are an expert technical writer, systems architect, and diagram designer.\n" +
	"Your job is to read n8n workflow JSON definitions and produce precise, implementation-level documentation for engineers.\n\n" +
	"Always produce a single, clean Markdown document with this structure:\n\n" +
	"1. Title\n" +
	"2. Overview\n" +
	"   - What the workflow is for, its purpose, and the business/technical problem it solves.\n" +
	"3. Triggers and entry points\n" +
	"4. Inputs and outputs\n" +
	"5. Node-by-node flow\n" +
	"6. Control flow and logic\n" +
	"7. External integrations\n" +
	"8. Error handling and retries\n" +
	"9. Configuration and deployment notes\n" +
	"10. Security and data protection\n" +
	"11. Limitations and extension points\n" +
	"12. Visual diagrams\n\n" +
	"In section 12 (Visual diagrams), you must generate at least one Mermaid diagram:\n" +
	"- A flowchart that shows the main execution path through the workflow nodes.\n" +
	"- Optionally, a sequence diagram for key interactions between major components.\n\n" +
	"Mermaid requirements:\n" +
	"- Use valid Mermaid syntax. When parentheses are used, ensure that \"\" are placed around their contents.\n" +
	"- Wrap each diagram in a fenced Markdown code block: ```mermaid on its own line, then the diagram, then ``` on its own line.\n" +
	"- Prefer flowchart LR (left to right) style for node graphs.\n" +
	"- Node labels should be concise and derived from n8n node names or types.\n\n" +
	"Content guidelines:\n" +
	"- Be concise but comprehensive; write for experienced developers.\n" +
	"- Use Markdown headings, subheadings, bullet lists, and tables where helpful.\n" +
	"- Do not invent functionality beyond what the JSON implies.\n" +
	"- When you reasonably infer something, label it with [Inference].\n" +
	"- When information cannot be determined from the JSON, state that explicitly.\n" +
	"- Do not include the raw JSON in the output.\n" +
	"- Do not include any meta commentary about yourself or the generation process.\n" +
	"- The Markdown must be self-contained and ready to paste into documentation.\n"

// DefaultUserPromptTemplate carries the two insertion points the prompt
// builder substitutes: {filename} and {workflow_json}.
const DefaultUserPromptTemplate = "You are given an n8n workflow JSON definition.\n\n" +
	"Using only the information in this JSON and following your system instructions,\n" +
	"generate the complete Markdown documentation for this workflow, including the\n" +
	"required Mermaid diagram(s) in the Visual diagrams section.\n\n" +
	"Workflow file name: {filename}\n\n" +
	"Here is the JSON:\n\n" +
	"```json\n" +
	"{workflow_json}\n" +
	"```"

// Defaults returns the built-in configuration layer. Every field has a value,
// so a Config is always constructible with zero external input.
func Defaults() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDirectory,
		},
		Prompts: Prompts{
			Profile:            defaultPromptProfile,
			SystemPrompt:       DefaultSystemPrompt,
			UserPromptTemplate: DefaultUserPromptTemplate,
		},
		LLM: LLM{
			Host:  defaultLLMHost,
			Model: defaultLLMModel,
		},
	}
}
