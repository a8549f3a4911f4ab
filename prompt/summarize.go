package prompt

func GetSummarizePrompt(code string) string {
	return "Summarize the following code in a concise and clear way:\n\n" + code
}
