package sqlfrag

import (
	"fmt"
	r "reflect"
	"slices"
	"strings"

	"github.com/mitranim/refut"
)

/*
Forces the inner value to be bound as exactly one argument, even if it's a
slice or an array that would otherwise be expanded. Useful for Postgres array
parameters. Flattening unwraps it, so the driver receives the inner value.
*/
type Scalar [1]any

// Makes a fragment consisting of a double-quoted identifier. Inner double
// quotes are escaped by doubling them.
func Ident(name string) Frag { return Str(quoteIdent(name)) }

/*
Scans a struct, accumulating fields tagged with `db` into a map suitable for
`DictFrag`. The input must be a struct or a struct pointer. A nil pointer is
fine and produces an empty non-nil map. Panics on other inputs. Treats embedded
structs as part of enclosing structs.
*/
func StructMap(input any) Dict {
	dict := Dict{}
	for _, field := range structFields(`converting struct to dict`, input) {
		dict[field.name] = field.value
	}
	return dict
}

/*
Returns a fragment suitable for an SQL `values()` clause, with one value per
field tagged with `db`. Slice fields are bound as single arguments, see
`Scalar`. An empty or nil struct produces an empty fragment.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{10, 20}

	query := TryQuery([]string{``, ``}, StructValues(val))

Is equivalent to:

	query := Query{Text: `$1, $2`, Args: []any{10, 20}}
*/
func StructValues(input any) Frag {
	return fieldsValues(structFields(`generating struct values`, input))
}

/*
Returns a fragment suitable for an SQL `insert` clause, with arguments.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{10, 20}

	query := TryQuery([]string{`insert into some_table `, ``}, StructInsert(val))

Is equivalent to:

	text := `insert into some_table ("one", "two") values ($1, $2)`
	args := []any{10, 20}

A struct without columns produces `default values`.
*/
func StructInsert(input any) Frag {
	fields := structFields(`generating struct insert`, input)
	if len(fields) == 0 {
		return Str(`default values`)
	}
	return Surround(`(`+fieldsNames(fields)+`) values (`, fieldsValues(fields), `)`)
}

/*
Returns a fragment suitable for an SQL `update set` clause, with arguments.

For example, this:

	val := struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}{10, 20}

	frag := StructAssign(val)

Flattens to:

	text := `"one" = $1, "two" = $2`
	args := []any{10, 20}

Known issue: when empty, this generates an empty fragment which is invalid SQL
in an update. Don't use this with structs without columns.
*/
func StructAssign(input any) Frag {
	fields := structFields(`generating struct assignments`, input)
	frags := make([]Frag, len(fields))
	for ind, field := range fields {
		frags[ind] = Frag{[]string{quoteIdent(field.name) + ` = `, ``}, []any{field.arg()}}
	}
	return Combine(`, `, frags...)
}

/*
Returns a fragment suitable for an SQL `where` or `on` clause, with arguments.
Fields whose values are nil after `driver.Valuer` encoding produce `is null`
conditions without arguments. A struct without columns produces `true`.

For example, this:

	val := struct {
		One   int64  `db:"one"`
		Two   int64  `db:"two"`
		Three *int64 `db:"three"`
	}{One: 10, Two: 20}

	frag := StructConds(val)

Flattens to:

	text := `"one" = $1 and "two" = $2 and "three" is null`
	args := []any{10, 20}
*/
func StructConds(input any) Frag {
	fields := structFields(`generating struct conditions`, input)
	if len(fields) == 0 {
		return Str(`true`)
	}

	frags := make([]Frag, len(fields))
	for ind, field := range fields {
		val, err := normValue(field.value)
		try(err)

		if val == nil {
			frags[ind] = Str(quoteIdent(field.name) + ` is null`)
			continue
		}
		field.value = val
		frags[ind] = Frag{[]string{quoteIdent(field.name) + ` = `, ``}, []any{field.arg()}}
	}
	return Combine(` and `, frags...)
}

/*
Returns a fragment suitable for a multi-row SQL `insert` clause. Every input
must be a struct (or struct pointer) with the same `db` columns, in the same
order. Rows are combined without flattening, and numbered when the final query
is built.

For example, this:

	type Row struct {
		One int64 `db:"one"`
		Two int64 `db:"two"`
	}

	frag := InsertRows(Row{10, 20}, Row{30, 40})

Flattens to:

	text := `("one", "two") values ($1, $2), ($3, $4)`
	args := []any{10, 20, 30, 40}

Panics without inputs, on structs without columns, and on column mismatch.
*/
func InsertRows(inputs ...any) Frag {
	const while = `generating multi-row insert`

	if len(inputs) == 0 {
		panic(Err{Code: ErrCodeInvalidInput, While: while, Cause: fmt.Errorf(`expected at least one row`)})
	}

	var cols []string
	var head string
	rows := make([]Frag, len(inputs))

	for ind, input := range inputs {
		fields := structFields(while, input)
		names := fieldsColumns(fields)

		if ind == 0 {
			if len(names) == 0 {
				panic(Err{Code: ErrCodeInvalidInput, While: while, Cause: fmt.Errorf(`expected at least one column in %T`, input)})
			}
			cols = names
			head = fieldsNames(fields)
		} else if !slices.Equal(cols, names) {
			panic(Err{
				Code:  ErrCodeInvalidInput,
				While: while,
				Cause: fmt.Errorf(`row %v has columns %q, expected %q`, ind, names, cols),
			})
		}

		rows[ind] = Parens(fieldsValues(fields))
	}

	return Surround(`(`+head+`) values `, Combine(arraySep, rows...), ``)
}

type structField struct {
	name  string
	value any
}

// Arrays are bound as one argument, fragments are inlined.
func (self structField) arg() any { return exprArg(self.value) }

func structFields(while string, input any) []structField {
	rval := r.ValueOf(input)
	if !rval.IsValid() {
		panic(errExpectedStruct(while, nil))
	}

	rtype := refut.RtypeDeref(rval.Type())
	if rtype.Kind() != r.Struct {
		panic(errExpectedStruct(while, rtype))
	}

	if refut.IsRvalNil(rval) {
		return nil
	}

	var out []structField
	err := refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		if !sfield.IsExported() {
			return nil
		}
		name := sfieldColumnName(sfield)
		if name == `` {
			return nil
		}
		out = append(out, structField{name, rval.Interface()})
		return nil
	})
	try(err)
	return out
}

func fieldsColumns(fields []structField) []string {
	out := make([]string, len(fields))
	for ind, field := range fields {
		out[ind] = field.name
	}
	return out
}

func fieldsNames(fields []structField) string {
	var buf strings.Builder
	for ind, field := range fields {
		if ind > 0 {
			buf.WriteString(arraySep)
		}
		buf.WriteString(quoteIdent(field.name))
	}
	return buf.String()
}

func fieldsValues(fields []structField) Frag {
	if len(fields) == 0 {
		return Frag{}
	}

	segs := make([]string, len(fields)+1)
	vals := make([]any, len(fields))
	for ind, field := range fields {
		if ind > 0 {
			segs[ind] = arraySep
		}
		vals[ind] = field.arg()
	}
	return Frag{segs, vals}
}
