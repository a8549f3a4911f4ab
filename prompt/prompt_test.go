package prompt

import (
	"strings"
	"testing"
)

const sampleCode = "def add(a, b):\n    return a + b"

func TestPromptsEmbedCode(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		framing string
	}{
		{"summarize", GetSummarizePrompt(sampleCode), "Summarize the following code in a concise and clear way"},
		{"fix", GetErrorFixPrompt(sampleCode), "Analyze the following Python code for any syntax or logical errors"},
		{"suggest", GetRefactorSuggestionsPrompt(sampleCode), "refactoring suggestions in bullet points"},
		{"complete", GetCompletePrompt(sampleCode), "Complete the code below and return only the code"},
		{"refactor", GetRefactorPrompt(sampleCode), "return only the refactored code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.prompt, tt.framing) {
				t.Errorf("Expected prompt to contain %q, got %q", tt.framing, tt.prompt)
			}
			if !strings.Contains(tt.prompt, sampleCode) {
				t.Errorf("Expected prompt to contain the code, got %q", tt.prompt)
			}
		})
	}
}

func TestSummarizePromptEndsWithCode(t *testing.T) {
	p := GetSummarizePrompt(sampleCode)
	if !strings.HasSuffix(p, "\n\n"+sampleCode) {
		t.Errorf("Expected code to follow a blank line at the end of the prompt, got %q", p)
	}
}

func TestErrorFixPromptFencesCode(t *testing.T) {
	p := GetErrorFixPrompt(sampleCode)
	expected := "```python\n" + sampleCode + "\n```"
	if !strings.HasSuffix(p, expected) {
		t.Errorf("Expected code inside a python fence at the end of the prompt, got %q", p)
	}
	if !strings.Contains(p, "just return the corrected code") {
		t.Error("Expected prompt to ask for corrected code only")
	}
}
