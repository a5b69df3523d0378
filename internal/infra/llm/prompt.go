package llm

import (
	"fmt"
	"strings"

	"github.com/budge42/novanews/internal/config"
	"github.com/budge42/novanews/internal/domain/entity"
)

const defaultSystemPrompt = `You are a news desk assistant. Return exactly %d recent news stories as a raw JSON array.
Each element must be an object with exactly these string fields:
"title", "summary" (two or three sentences), "source" (publication name), "date" (YYYY-MM-DD).
Every title must be unique. Output only the JSON array: no commentary, no markdown, no code fences.`

var defaultEditorial = []string{
	"Favor independent and primary sources over aggregators and press releases.",
	"Only include stories published within the last 10 days.",
}

// Prompts builds the text sent to the provider. The model is asked politely;
// the validator downstream is what actually enforces the schema.
type Prompts struct {
	system    string
	editorial []string
}

// NewPrompts applies operator overrides to the built-in prompts.
func NewPrompts(o config.PromptOverrides) Prompts {
	p := Prompts{
		system:    fmt.Sprintf(defaultSystemPrompt, entity.TargetNewsCount),
		editorial: defaultEditorial,
	}
	if strings.TrimSpace(o.System) != "" {
		p.system = o.System
	}
	if len(o.Editorial) > 0 {
		p.editorial = o.Editorial
	}
	return p
}

// System returns the system message for chat-style providers.
func (p Prompts) System() string {
	return p.system
}

// User returns the user message naming the topic and page offset.
func (p Prompts) User(topic string, offset int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %q.\n", topic)
	fmt.Fprintf(&b, "Find %d recent news stories about this topic.", entity.TargetNewsCount)
	if offset > 0 {
		fmt.Fprintf(&b, " Skip the first %d most relevant stories and start from story %d.", offset, offset+1)
	}
	return b.String()
}

// WebSearchInput returns the single combined input used by the web search shape:
// schema instructions, topic, editorial constraints and the offset.
func (p Prompts) WebSearchInput(topic string, offset int) string {
	var b strings.Builder
	b.WriteString(p.system)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Search the web for news about %q.\n", topic)
	b.WriteString("Editorial constraints:\n")
	for _, rule := range p.editorial {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteString("\n")
	}
	if offset > 0 {
		fmt.Fprintf(&b, "- Skip the first %d search results; begin with result %d.\n", offset, offset+1)
	}
	return b.String()
}
