package openai

import "fmt"

const expansionPromptTemplate = "Return ONLY a comma-separated list of short phrases. " +
	"No explanations. Similar to: %s"

// buildPrompt creates the user prompt asking for terms related to word.
func buildPrompt(word string) string {
	return fmt.Sprintf(expansionPromptTemplate, word)
}
