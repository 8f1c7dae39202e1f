package contentgen

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ParseAmount reads a whole, non-negative amount from free-form input.
// An optional sign and the leading run of digits are used ("12.5" is 12,
// "45000 USD" is 45000). Empty, unparseable or negative input yields 0.
func ParseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 || negative {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Amount decodes from a JSON number or string via ParseAmount, so form
// fields can be forwarded as typed.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	*a = Amount(ParseAmount(s))
	return nil
}

func (a Amount) Int64() int64 { return int64(a) }
