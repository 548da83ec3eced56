package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// GenerateOverBytesUnderRunes генерирует строку, длина которой в рунах будет всегда меньше длины в байтах.
func GenerateOverBytesUnderRunes(count int) string {
	symbol := "😁" // 4 байта, 1 руна
	return strings.Repeat(symbol, count)
}

// FakeAccount случайный адрес счета с префиксом 0x.
func FakeAccount() string {
	return "0x" + strings.ToUpper(gofakeit.LetterN(12))
}
