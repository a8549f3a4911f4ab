package common

import "testing"

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"python fenced block", "```python\nprint(1)\n```", "print(1)"},
		{"surrounding whitespace", "  \n```python\nprint(1)\n```\n  ", "print(1)"},
		{"bare fence", "```\nx = 1\n```", "x = 1"},
		{"fences in the middle", "a = 1\n```python\nb = 2\n```\nc = 3", "a = 1\n\nb = 2\n\nc = 3"},
		{"no fences", "print(1)", "print(1)"},
		{"only fences", "```python```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRemoveCommentMarkers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"inline comment", "x = 1  # comment", "x = 1   comment"},
		{"several markers", "## title\nx = 1 #a", " title\nx = 1 a"},
		{"trims first", "  x = 1\n", "x = 1"},
		{"no markers", "def f():\n    return 1", "def f():\n    return 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveCommentMarkers(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDropCommentLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"full line comment", "x = 1\n# a comment\ny = 2", "x = 1\ny = 2"},
		{"indented comment", "def f():\n    # note\n    return 1", "def f():\n    return 1"},
		{"inline comment kept", "x = 1  # keep me", "x = 1  # keep me"},
		{"leading comment trimmed away", "# header\nx = 1", "x = 1"},
		{"all comments", "# a\n# b", ""},
		{"surrounding whitespace", "\n\n  x = 1\n\n", "x = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DropCommentLines(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPostProcessingIsIdempotentOnCleanInput(t *testing.T) {
	clean := "def add(a, b):\n    return a + b"

	transforms := map[string]func(string) string{
		"TrimOutput":           TrimOutput,
		"StripCodeFences":      StripCodeFences,
		"RemoveCommentMarkers": RemoveCommentMarkers,
		"DropCommentLines":     DropCommentLines,
	}

	for name, fn := range transforms {
		once := fn(clean)
		if once != clean {
			t.Errorf("%s: expected clean input to pass through, got %q", name, once)
		}
		if twice := fn(once); twice != once {
			t.Errorf("%s: expected second pass to be a no-op, got %q", name, twice)
		}
	}
}
