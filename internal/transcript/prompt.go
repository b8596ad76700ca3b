package transcript

import "fmt"

const humanizePrompt = `I have a JSON transcript from an Amazon Connect conversation. Please convert it into a human-readable format with AGENT and CUSTOMER as the keys. Here is the JSON transcript:

%s`

// buildPrompt embeds the compacted raw transcript into the fixed
// humanization instruction.
func buildPrompt(jsonContent string) string {
	return fmt.Sprintf(humanizePrompt, jsonContent)
}
