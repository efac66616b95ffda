// Package cell holds the typed value of a single spreadsheet cell.
package cell

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value carries.
type Kind uint8

const (
	Empty Kind = iota
	Text
	Number
	Bool
	Date
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Date:
		return "date"
	default:
		return "empty"
	}
}

// Value is a cell as returned by the remote source: text, number, bool, date
// or absent. The zero Value is Empty.
type Value struct {
	kind Kind
	text string
	num  float64
	flag bool
	date time.Time
}

func TextValue(s string) Value { return Value{kind: Text, text: s} }
func NumberValue(n float64) Value { return Value{kind: Number, num: n} }
func BoolValue(b bool) Value { return Value{kind: Bool, flag: b} }
func DateValue(t time.Time) Value { return Value{kind: Date, date: t} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsEmpty() bool { return v.kind == Empty }
func (v Value) Float() (float64, bool) { return v.num, v.kind == Number }
func (v Value) Time() (time.Time, bool) { return v.date, v.kind == Date }

// Of wraps a raw cell as decoded from the Sheets JSON payload.
func Of(raw interface{}) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return x
	case string:
		return TextValue(x)
	case float64:
		return NumberValue(x)
	case float32:
		return NumberValue(float64(x))
	case int:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return NumberValue(f)
		}
		return TextValue(x.String())
	case bool:
		return BoolValue(x)
	case time.Time:
		return DateValue(x)
	default:
		return TextValue(fmt.Sprint(x))
	}
}

// IsBlank reports whether the cell is absent or holds only whitespace.
func (v Value) IsBlank() bool {
	switch v.kind {
	case Empty:
		return true
	case Text:
		return strings.TrimSpace(v.text) == ""
	default:
		return false
	}
}

// String renders the cell the way a user would type it. Whole numbers drop
// their decimal part so numeric IDs and passwords compare as text.
func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case Bool:
		if v.flag {
			return "TRUE"
		}
		return "FALSE"
	case Date:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Interface returns the underlying Go value, nil when Empty.
func (v Value) Interface() interface{} {
	switch v.kind {
	case Text:
		return v.text
	case Number:
		return v.num
	case Bool:
		return v.flag
	case Date:
		return v.date
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == Date {
		return json.Marshal(v.date.Format("2006-01-02"))
	}
	return json.Marshal(v.Interface())
}
