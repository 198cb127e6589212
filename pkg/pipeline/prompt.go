package pipeline

import "strings"

// instructionTemplate is the fixed instruction sent to the completion
// service. It demands a strict JSON array so the response can be parsed
// mechanically; anything else degrades to an empty draft set.
const instructionTemplate = `Please generate flashcards in a Q&A format from the following text.
Each flashcard should focus on a single concept, with the question on the front
and the answer on the back. Extract only the essential information from the given webpage
and generate concise, high-quality flashcards for learning.
Input: You will receive raw webpage content, which may include navigation menus, footnotes,
and references.

Generate flashcards in JSON format with a "front" (question) and "back" (answer).
Ensure the output follows this structure:
[
  { "front": "Question here", "back": "Answer here" },
  { "front": "Another question", "back": "Another answer" }
]
`

// BuildPrompt assembles the completion prompt from extracted page text
// and an optional user focus hint.
func BuildPrompt(text, focus string) string {
	var sb strings.Builder
	sb.WriteString(instructionTemplate)
	if focus = strings.TrimSpace(focus); focus != "" {
		sb.WriteString("\nExtract only the most relevant flashcards from the following webpage content: ")
		sb.WriteString(focus)
		sb.WriteString(".")
	}
	sb.WriteString("\n\nContent:\n")
	sb.WriteString(text)
	return sb.String()
}
