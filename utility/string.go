package utility

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

func NewUUID() string {
	return uuid.New().String()
}

// FormatRupiah renders an amount as "Rp 1.234.567" with Indonesian
// thousand separators. Fractions are rounded away; tax figures below one
// rupiah are not meaningful.
func FormatRupiah(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return "Rp " + sign + string(out)
}
