package excel

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	// headerTag holds the header label followed by the aliases, e.g. `x-header:"序号,编号"`.
	headerTag = "x-header"
	// commentTag holds the annotation of the header cell.
	commentTag = "x-comment"
	// optionsTag holds the drop-down list of the column, e.g. `x-options:"男,女"`.
	optionsTag = "x-options"
	// skipTag as the header label excludes the field.
	skipTag = "-"
)

// SchemaFromTags builds the schema of T from the struct tags of its fields.
//
//	type TestData struct {
//		Name string `x-header:"名称" x-comment:"Name"`
//		Age  string `x-header:"年龄,岁数" x-comment:"Age"`
//	}
//
// Every exported field needs an x-header tag, unexported fields are ignored.
// The reflection is done here once; the returned accessors only index the field.
func SchemaFromTags[T any]() (*Schema[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t.String())
	}
	columns := make([]Column[T], 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, ok := field.Tag.Lookup(headerTag)
		if strings.TrimSpace(tag) == skipTag {
			continue
		}
		names := splitTag(tag)
		if !ok || len(names) == 0 {
			return nil, fmt.Errorf("%w: field=%s of %s", ErrMissingHeader, field.Name, t.String())
		}
		if !isConvertible(field.Type) {
			return nil, fmt.Errorf("%w: field=%s is %s", ErrUnsupportedType, field.Name, field.Type.String())
		}
		fieldIndex := i
		columns = append(columns, Column[T]{
			Header:  names[0],
			Aliases: names[1:],
			Field:   field.Name,
			Comment: field.Tag.Get(commentTag),
			Options: splitTag(field.Tag.Get(optionsTag)),
			Get: func(item *T) string {
				if item == nil {
					return ""
				}
				return formatValue(reflect.ValueOf(item).Elem().Field(fieldIndex))
			},
			Set: func(item *T, str string) error {
				return setValue(reflect.ValueOf(item).Elem().Field(fieldIndex), str)
			},
		})
	}
	return NewSchema(columns...)
}

// split the comma separated tag value and erase the blank of each part.
func splitTag(tag string) []string {
	parts := strings.Split(tag, ",")
	result := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}
