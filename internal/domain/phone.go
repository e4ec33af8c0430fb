package domain

import "strings"

// NormalizePhone приводит телефон к виду +7XXXXXXXXXX.
// Возвращает пустую строку, если цифр недостаточно.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, ch := range strings.TrimSpace(raw) {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}

	d := digits.String()
	if len(d) < 10 {
		return ""
	}

	// 9XXXXXXXXX — российский номер без кода страны
	if len(d) == 10 && strings.HasPrefix(d, "9") {
		d = "7" + d
	}

	// 8XXXXXXXXXX — российский номер через восьмёрку
	if len(d) == 11 && strings.HasPrefix(d, "8") {
		d = "7" + d[1:]
	}

	return "+" + d
}

// SplitContact разбирает строку «Имя, телефон» на имя и нормализованный номер
func SplitContact(raw string) (string, string) {
	raw = strings.TrimSpace(raw)

	if name, phone, ok := strings.Cut(raw, ","); ok {
		return strings.TrimSpace(name), NormalizePhone(phone)
	}
	return raw, ""
}
