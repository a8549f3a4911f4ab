package prompt

func GetCompletePrompt(code string) string {
	return "Complete the code below and return only the code (no comments, explanations, or extra text):\n\n" + code
}
