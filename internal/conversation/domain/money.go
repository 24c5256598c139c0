package domain

import "strconv"

// FormatAmount renders a rupee amount with Indian digit grouping:
// 800 -> "800", 50000 -> "50,000", 300000 -> "3,00,000".
func FormatAmount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		for len(head) > 2 {
			tail = head[len(head)-2:] + "," + tail
			head = head[:len(head)-2]
		}
		s = head + "," + tail
	}
	if neg {
		return "-" + s
	}
	return s
}
