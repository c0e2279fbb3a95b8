package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is an amount in cents. Decimal input with more than two fraction digits is
// rounded half-up, so every price renders with exactly two decimals.
type Price int64

// maxWhole keeps whole*100 + cents within int64
const maxWhole = (math.MaxInt64 - 99) / 100

func ParsePrice(value string) (Price, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty price")
	}
	if strings.HasPrefix(value, "-") {
		return 0, fmt.Errorf("negative price '%s'", value)
	}
	value = strings.TrimPrefix(value, "+")

	wholePart, fractionPart, _ := strings.Cut(value, ".")
	if wholePart == "" {
		wholePart = "0"
	}
	if !isDigits(wholePart) || !isDigits(fractionPart) {
		return 0, fmt.Errorf("invalid price '%s'", value)
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price '%s': %s", value, err)
	}
	if whole > maxWhole {
		return 0, fmt.Errorf("price '%s' too large", value)
	}

	fraction := fractionPart + "000"
	cents, _ := strconv.ParseInt(fraction[:2], 10, 64)
	if fraction[2] >= '5' {
		cents++
	}

	return Price(whole*100 + cents), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String formats with exactly two decimals: 2000 -> "20.00"
func (p Price) String() string {
	sign := ""
	abs := uint64(p)
	if p < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}

// MarshalJSON writes a plain json number: 2000 -> 20, 2050 -> 20.5
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(p)/100, 'f', -1, 64)), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var number json.Number
	err := json.Unmarshal(data, &number)
	if err != nil {
		return fmt.Errorf("error parsing price: %s", err)
	}
	parsed, err := ParsePrice(number.String())
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
