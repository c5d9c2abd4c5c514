package script

import (
	"strings"

	"github.com/aretw0/parley/pkg/domain"
)

const (
	tagIf = "if"
	tagDo = "do"
)

const malformedConditional = "Malformed conditional"

// opensTag reports whether s starts with the bracket tag "[name".
func opensTag(s, name string) bool {
	prefix := "[" + name
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	rest := s[len(prefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == ']'
}

// checkTags fails when s starts with "[if" or "[do" and never reaches a "]".
// Any such prefix counts, so "[iffy" without a bracket is an error too.
func checkTags(s string, line int) error {
	if (strings.HasPrefix(s, "["+tagIf) || strings.HasPrefix(s, "["+tagDo)) && !strings.Contains(s, "]") {
		return &domain.ParseError{Message: malformedConditional, Line: line}
	}
	return nil
}

// cutCondition strips a leading "[if expr]" from s.
// It returns the expression (or "") and the trimmed remainder.
func cutCondition(s string, line int) (condition, rest string, err error) {
	if err := checkTags(s, line); err != nil {
		return "", "", err
	}
	if !opensTag(s, tagIf) {
		return "", s, nil
	}
	end := strings.IndexByte(s, ']')
	condition = strings.TrimSpace(s[len(tagIf)+1 : end])
	rest = strings.TrimSpace(s[end+1:])
	if err := checkTags(rest, line); err != nil {
		return "", "", err
	}
	return condition, rest, nil
}

// cutMutation matches a remainder that is exactly "[do expr]".
func cutMutation(s string) (expression string, ok bool) {
	if !opensTag(s, tagDo) || strings.IndexByte(s, ']') != len(s)-1 {
		return "", false
	}
	return strings.TrimSpace(s[len(tagDo)+1 : len(s)-1]), true
}

// cutArrow matches a remainder that starts with "->".
func cutArrow(s string) (target string, ok bool) {
	if !strings.HasPrefix(s, "->") {
		return "", false
	}
	return targetOrEnd(s[2:]), true
}

// cutSpeaker matches "Name: text". The colon must be followed by a space or
// end the line, so "10:30" is not read as a speaker.
func cutSpeaker(s string) (character, text string, ok bool) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return "", "", false
	}
	if i+1 < len(s) && s[i+1] != ' ' && s[i+1] != '\t' {
		return "", "", false
	}
	character = strings.TrimSpace(s[:i])
	if character == "" {
		return "", "", false
	}
	return character, strings.TrimSpace(s[i+1:]), true
}

func targetOrEnd(s string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return domain.EndTarget
}

// physicalLines splits text on line breaks. Empty text has no lines.
func physicalLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
