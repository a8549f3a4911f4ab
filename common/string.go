package common

import "strings"

const (
	CommentMarker   = "#"
	PythonFenceOpen = "```python"
	Fence           = "```"
)

// TrimOutput removes surrounding whitespace from model output.
func TrimOutput(s string) string {
	return strings.TrimSpace(s)
}

// StripCodeFences removes every python-tagged opening fence and every bare fence,
// wherever they appear, and trims the result.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, PythonFenceOpen, "")
	s = strings.ReplaceAll(s, Fence, "")
	return strings.TrimSpace(s)
}

// RemoveCommentMarkers trims s and deletes every comment marker character.
// Text around the markers, spacing included, is kept as is.
func RemoveCommentMarkers(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), CommentMarker, "")
}

// DropCommentLines trims s and removes every line that is a comment once its indentation is ignored.
// Remaining lines keep their order and original indentation.
func DropCommentLines(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), CommentMarker) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
