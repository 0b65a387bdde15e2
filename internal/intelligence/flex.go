package intelligence

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// flexFloat decodes a JSON number that a model may also emit as a quoted
// string. null leaves the value unset.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("expected number, got %s", b)
	}
	f.Value, f.Set = v, true
	return nil
}

func (f flexFloat) Or(def float64) float64 {
	if !f.Set {
		return def
	}
	return f.Value
}
