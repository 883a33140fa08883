package repair

import "regexp"

// An optional language tag, a newline, then everything up to the next fence.
var fencedBlock = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9]+)?\n(.*?)```")

// WrapMarkdown fences content the way the repair service expects it.
func WrapMarkdown(content string) string {
	return "```\n" + content + "```"
}

// ExtractScript returns the interior of the first fenced block. Without a
// fence the whole body is taken as the script; that is a best-effort
// fallback, not a validity check.
func ExtractScript(body string) string {
	m := fencedBlock.FindStringSubmatch(body)
	if m == nil {
		return body
	}
	return m[1]
}

func hasFence(body string) bool {
	return fencedBlock.MatchString(body)
}
