package engine

import (
	"strconv"
	"strings"
)

// ParseSegments разбирает ввод количества секторов.
// Допускаются целые из (0, limit]; ведущие цифры как у parseInt ("12abc" -> 12)
func ParseSegments(text string, limit int) (int, bool) {
	digits := leadingInt(strings.TrimSpace(text))
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if n <= 0 || n > limit {
		return 0, false
	}
	return n, true
}

func leadingInt(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return ""
	}
	return s[:end]
}
