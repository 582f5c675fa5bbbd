package sheets

import (
	"fmt"
	"strings"
	"unicode"
)

// columnLetter converts a 1-based column number to its A1 letters: 1 -> A, 27 -> AA.
func columnLetter(n int) string {
	var letters []byte
	for n > 0 {
		n--
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n /= 26
	}
	return string(letters)
}

// a1 builds a range on the worksheet title. The title is always quoted so
// period keys containing spaces or punctuation stay valid.
func a1(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}

func cellRange(title string, format string, args ...any) string {
	return a1(title, fmt.Sprintf(format, args...))
}

// ValidPeriod reports whether key can be used as a worksheet title.
func ValidPeriod(key string) bool {
	if strings.TrimSpace(key) == "" || len([]rune(key)) > 100 {
		return false
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func cellString(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}
