package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseCategoryContent extracts the category string from a provider response.
// Providers are instructed to return bare JSON, but models wander: markdown
// fences and plain single-word answers both occur, so both are tolerated.
// Validation against the fixed category set happens later, in the classifier.
func parseCategoryContent(content string) (string, error) {
	content = cleanMarkdownWrapper(content)

	var jsonResp struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(content), &jsonResp); err == nil {
		if jsonResp.Category == "" {
			return "", fmt.Errorf("no category found in response")
		}
		return jsonResp.Category, nil
	}

	// Fall back to treating the whole response as a bare category word.
	word := strings.TrimSpace(content)
	if word == "" || strings.ContainsAny(word, " \n\t{}") {
		return "", fmt.Errorf("unparseable classifier response: %q", content)
	}
	return word, nil
}

// cleanMarkdownWrapper strips a ```json ... ``` fence when a model wraps its
// response despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
