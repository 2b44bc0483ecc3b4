package risk

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Field is a form value as typed by the user. JSON clients may send it either as a
// string or as a bare number.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	*f = Field(b)
	return nil
}

var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
)

// Int parses the leading integer of the field the way a browser form parser does:
// "120mmHg" is 120, "12.9" is 12. ok is false when there is no leading integer.
func (f Field) Int() (float64, bool) {
	return parsePrefix(intPrefix, string(f))
}

// Float parses the leading decimal number of the field. "Infinity" and
// out-of-range values such as "1e400" parse as infinities.
func (f Field) Float() (float64, bool) {
	return parsePrefix(floatPrefix, string(f))
}

func parsePrefix(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN(), false
	}
	return v, true
}

// HealthProfile is the stroke-risk form as submitted.
type HealthProfile struct {
	Age           Field  `json:"age"`
	Gender        string `json:"gender" binding:"omitempty,oneofci=male female other"`
	BloodPressure Field  `json:"bloodPressure"`
	Glucose       Field  `json:"glucose"`
	BMI           Field  `json:"bmi"`
	Smoking       string `json:"smoking" binding:"omitempty,oneofci=never former current"`
	HeartDisease  string `json:"heartDisease" binding:"omitempty,oneofci=yes no"`
}

const (
	SmokingNever   = "never"
	SmokingFormer  = "former"
	SmokingCurrent = "current"
)
