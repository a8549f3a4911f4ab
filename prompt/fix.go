package prompt

// GetErrorFixPrompt asks for the corrected code only. The model tends to answer inside a
// python fence, which the caller strips afterwards.
func GetErrorFixPrompt(code string) string {
	return `Analyze the following Python code for any syntax or logical errors.
If errors are detected, suggest corrections and provide the fixed code.
Do not add explanations or comments, just return the corrected code.

Code:
` + "```python" + `
` + code + `
` + "```"
}
