package prompt

func GetRefactorPrompt(code string) string {
	return "Refactor the following code and return only the refactored code, without any explanations, comments, or extra text:\n\n" + code
}
