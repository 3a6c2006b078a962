package generator

import (
	"fmt"
	"regexp"
	"strings"

	"dealflow/internal/domain"
)

// KIQQuestionCount is the fixed length of every question worksheet.
const KIQQuestionCount = 15

var questionNumberRe = regexp.MustCompile(`(?m)^\s*(\d{1,2})[.)]\s+`)

// ComposeKIQ normalizes raw generation output into the fixed worksheet
// format: exactly 15 numbered questions, the two mandatory questions verbatim
// first, each followed by an 'A:' answer slot. Output that cannot be parsed
// into the expected number of questions falls back to the fixed failure
// placeholder, which is still a single non-empty document body.
func ComposeKIQ(raw string) string {
	questions, ok := parseQuestions(raw)
	if !ok {
		return domain.KIQFailureText
	}

	// The model is asked to include the mandatory questions itself, but the
	// worksheet guarantees them verbatim regardless of output variability.
	questions[0] = MandatoryQuestion1
	questions[1] = MandatoryQuestion2

	var b strings.Builder
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\nA:", i+1, q)
	}
	return b.String()
}

// parseQuestions splits raw output on numbered-list markers and strips the
// answer slots. It accepts a full 15-question list or a 13-question list
// missing the mandatory pair; anything else is malformed.
func parseQuestions(raw string) ([]string, bool) {
	matches := questionNumberRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return nil, false
	}

	var questions []string
	for i, m := range matches {
		start := m[1]
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		q := raw[start:end]
		// Drop the answer slot and any response text under it.
		if idx := answerSlotIndex(q); idx >= 0 {
			q = q[:idx]
		}
		q = strings.TrimSpace(collapseWhitespace(q))
		if q == "" {
			return nil, false
		}
		questions = append(questions, q)
	}

	switch len(questions) {
	case KIQQuestionCount:
		return questions, true
	case KIQQuestionCount - 2:
		return append([]string{MandatoryQuestion1, MandatoryQuestion2}, questions...), true
	default:
		return nil, false
	}
}

var answerSlotRe = regexp.MustCompile(`(?m)^\s*A:`)

func answerSlotIndex(s string) int {
	loc := answerSlotRe.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[0]
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(s, " ")
}
