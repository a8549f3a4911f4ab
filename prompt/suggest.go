package prompt

func GetRefactorSuggestionsPrompt(code string) string {
	return "Review the following code and suggest improvements. Return a list of refactoring suggestions in bullet points:\n\n" + code
}
