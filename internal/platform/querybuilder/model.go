package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelField is one exported struct field carrying a db tag.
type modelField struct {
	column string
	index  int
}

var fieldCache sync.Map // reflect.Type -> []modelField

// InsertModel builds an INSERT for every db-tagged field of model, in field
// order.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, err := structValue(model)
	if err != nil {
		return "", nil, err
	}
	fields := modelFields(value.Type())
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.column
		vals[i] = value.Field(f.index).Interface()
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// Columns lists the db columns of model so SELECTs stay in step with the
// row struct they scan into.
func Columns(model any) ([]string, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}
	fields := modelFields(value.Type())
	if len(fields) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", value.Type())
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.column
	}
	return cols, nil
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be struct, got %s", value.Kind())
	}
	return value, nil
}

func modelFields(typ reflect.Type) []modelField {
	if cached, ok := fieldCache.Load(typ); ok {
		return cached.([]modelField)
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, modelField{column: column, index: i})
	}
	fieldCache.Store(typ, fields)
	return fields
}
