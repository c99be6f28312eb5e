package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags удаляет HTML-теги из пользовательского текста
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// RemoveZalgo удаляет комбинирующие диакритические знаки ("залго"):
// текст раскладывается в NFD, символы категории M отбрасываются,
// результат собирается обратно в NFC
func RemoveZalgo(text string) string {
	decomposed := norm.NFD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.IsMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// Sanitize применяет полную очистку поля поста
func Sanitize(text string) string {
	return RemoveZalgo(StripTags(text))
}
