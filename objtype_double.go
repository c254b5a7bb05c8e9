package mpf

import (
	"math"
	"strconv"
)

// DoubleType is the internal representation for floating-point values.
type DoubleType float64

func (t DoubleType) Name() string         { return "double" }
func (t DoubleType) Dup() ObjType         { return t }
func (t DoubleType) UpdateString() string { return strconv.FormatFloat(float64(t), 'g', -1, 64) }

// IntoInt succeeds only when the value is an exact integer in range;
// truncating here would silently change operand classification.
func (t DoubleType) IntoInt() (int64, bool) {
	d := float64(t)
	if d != math.Trunc(d) || d < math.MinInt64 || d >= math.MaxInt64 {
		return 0, false
	}
	return int64(d), true
}

func (t DoubleType) IntoDouble() (float64, bool) { return float64(t), true }
