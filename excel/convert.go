package excel

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// TimeLayout is the text form of time.Time fields in the sheet.
const TimeLayout = "2006-01-02 15:04:05"

var (
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Determines whether a field of type t can be filled from a cell text.
func isConvertible(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		if t.Kind() == reflect.Pointer {
			return false
		}
	}
	if t == timeType || reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// render the field as the text of a cell. nil and zero time are blank.
func formatValue(value reflect.Value) string {
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ""
		}
		value = value.Elem()
	}
	if value.Type() == timeType {
		t := value.Interface().(time.Time)
		if t.IsZero() {
			return ""
		}
		return t.Format(TimeLayout)
	}
	if m, ok := textMarshaler(value); ok {
		if b, err := m.MarshalText(); err == nil {
			return string(b)
		}
	}
	s, err := cast.ToStringE(value.Interface())
	if err != nil {
		// named types such as `type Level string` are not known by cast
		return fmt.Sprint(value.Interface())
	}
	return s
}

func textMarshaler(value reflect.Value) (encoding.TextMarshaler, bool) {
	if m, ok := value.Interface().(encoding.TextMarshaler); ok {
		return m, true
	}
	if value.CanAddr() {
		m, ok := value.Addr().Interface().(encoding.TextMarshaler)
		return m, ok
	}
	return nil, false
}

// set the cell text to the field. A blank text leaves the zero value in
// every field except strings.
func setValue(value reflect.Value, str string) error {
	if value.Kind() == reflect.Pointer {
		if strings.TrimSpace(str) == "" {
			value.Set(reflect.Zero(value.Type()))
			return nil
		}
		elem := reflect.New(value.Type().Elem())
		if err := setValue(elem.Elem(), str); err != nil {
			return err
		}
		value.Set(elem)
		return nil
	}
	if value.Kind() != reflect.String && strings.TrimSpace(str) == "" {
		value.Set(reflect.Zero(value.Type()))
		return nil
	}
	if value.Type() == timeType {
		return set2Time(value, str)
	}
	if value.CanAddr() {
		if u, ok := value.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(str))
		}
	}
	switch value.Kind() {
	case reflect.String:
		value.SetString(str)
	case reflect.Bool:
		set2bool(value, str)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return set2Int(value, str)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return set2Uint(value, str)
	case reflect.Float32, reflect.Float64:
		return set2Float(value, str)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, value.Type().String())
	}
	return nil
}

// set the cell value to a integer field. Numeric cells holding an integral
// float such as 3.0 or 1E3 are accepted too.
func set2Int(value reflect.Value, str string) error {
	str = strings.TrimSpace(str)
	intValue, err := strconv.ParseInt(str, 10, value.Type().Bits())
	if err != nil {
		f, ferr := strconv.ParseFloat(str, 64)
		// as a float64 MaxInt64 rounds up to 2^63, which is already out of range
		if ferr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || value.OverflowInt(int64(f)) {
			return fmt.Errorf("failed to convert value=%s to a int", str)
		}
		intValue = int64(f)
	}
	value.SetInt(intValue)
	return nil
}

// set the cell value to an unsigned integer field.
func set2Uint(value reflect.Value, str string) error {
	str = strings.TrimSpace(str)
	uintValue, err := strconv.ParseUint(str, 10, value.Type().Bits())
	if err != nil {
		f, ferr := strconv.ParseFloat(str, 64)
		if ferr != nil || f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 || value.OverflowUint(uint64(f)) {
			return fmt.Errorf("failed to convert value=%s to a uint", str)
		}
		uintValue = uint64(f)
	}
	value.SetUint(uintValue)
	return nil
}

// set the cell value to a float field
func set2Float(value reflect.Value, str string) error {
	floatValue, err := strconv.ParseFloat(strings.TrimSpace(str), value.Type().Bits())
	if err != nil {
		return fmt.Errorf("failed to convert value=%s to a float", str)
	}
	value.SetFloat(floatValue)
	return nil
}

// set the cell value to a time.Time field. A number is taken as an Excel
// date serial, anything else is parsed as a date text.
func set2Time(value reflect.Value, str string) error {
	str = strings.TrimSpace(str)
	var toTime time.Time
	if floatValue, err := strconv.ParseFloat(str, 64); err == nil {
		toTime, err = excelize.ExcelDateToTime(floatValue, false)
		if err != nil {
			return fmt.Errorf("failed to convert value=%s to a time", str)
		}
	} else {
		toTime, err = cast.ToTimeE(str)
		if err != nil {
			return fmt.Errorf("failed to convert value=%s to a time: %w", str, err)
		}
	}
	value.Set(reflect.ValueOf(toTime))
	return nil
}

// set the cell value to a bool field. Only FALSE and 0 are false.
func set2bool(value reflect.Value, str string) {
	s := strings.ToUpper(strings.TrimSpace(str))
	v := true
	if s == "FALSE" || s == "0" {
		v = false
	}
	value.SetBool(v)
}
