package builtins

import "github.com/Aghajari/MathParser/session"

func registerBitwise(s *session.Session) {
	addBinary(s, "and", func(a, b float64) float64 { return float64(int64(a) & int64(b)) })
	addBinary(s, "or", func(a, b float64) float64 { return float64(int64(a) | int64(b)) })
	addBinary(s, "xor", func(a, b float64) float64 { return float64(int64(a) ^ int64(b)) })
	addUnary(s, "not", func(a float64) float64 { return float64(^int64(a)) })
	addBinary(s, "nor", func(a, b float64) float64 { return float64(^(int64(a) | int64(b))) })
	addBinary(s, "shiftleft", func(a, b float64) float64 { return float64(int64(a) << uint(int64(b))) })
	addBinary(s, "shiftright", func(a, b float64) float64 { return float64(int64(a) >> uint(int64(b))) })
	addBinary(s, "unsignedshiftright", func(a, b float64) float64 {
		return float64(uint64(int64(a)) >> uint(int64(b)))
	})
}
