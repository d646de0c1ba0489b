package intake

import "strings"

// MaxContactDigits 연락처 최대 자릿수，超出部分截断
const MaxContactDigits = 11

// NormalizeContact 去掉非数字字符后按位数分组：
//
//	≤3 位  → 原样
//	4–7 位 → 3-나머지
//	8–11 位 → 3-4-나머지
//	>11 位 → 取前 11 位后按 3-4-4 分组
func NormalizeContact(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > MaxContactDigits {
		digits = digits[:MaxContactDigits]
	}

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 7:
		return digits[:3] + "-" + digits[3:]
	default:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
}
