package sqlfrag

import (
	"database/sql"
	"database/sql/driver"
	r "reflect"
	"strings"
	"time"

	"github.com/mitranim/refut"
)

const (
	ordinalParamPrefix = '$'
	arraySep           = `, `
	quoteDouble        = `"`
)

var (
	typeTime        = r.TypeOf((*time.Time)(nil)).Elem()
	sqlScannerRtype = r.TypeOf((*sql.Scanner)(nil)).Elem()
)

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

func isWhitespaceChar(char byte) bool {
	switch char {
	case ' ', '\n', '\r', '\t', '\v':
		return true
	default:
		return false
	}
}

// True if a space is unnecessary before appending more text.
func hasDelimSuffix(text []byte) bool {
	if len(text) == 0 {
		return true
	}
	char := text[len(text)-1]
	return isWhitespaceChar(char) || char == '(' || char == '[' || char == '{' || char == '.'
}

func maybeAppendSpace(text []byte) []byte {
	if hasDelimSuffix(text) {
		return text
	}
	return append(text, ' ')
}

func growBytes(prev []byte, size int) []byte {
	len, cap := len(prev), cap(prev)
	if cap-len >= size {
		return prev
	}

	next := make([]byte, len, 2*cap+size)
	copy(next, prev)
	return next
}

func growInterfaces(prev []any, size int) []any {
	len, cap := len(prev), cap(prev)
	if cap-len >= size {
		return prev
	}

	next := make([]any, len, 2*cap+size)
	copy(next, prev)
	return next
}

func quoteIdent(name string) string {
	return quoteDouble + strings.ReplaceAll(name, quoteDouble, quoteDouble+quoteDouble) + quoteDouble
}

func sfieldColumnName(sfield r.StructField) string {
	return refut.TagIdent(sfield.Tag.Get("db"))
}

// Falls back on the field name, like "encoding/json".
func sfieldJsonName(sfield r.StructField) string {
	tag, ok := sfield.Tag.Lookup("json")
	if !ok {
		return sfield.Name
	}
	if tag == `-` {
		return ``
	}
	name := refut.TagIdent(tag)
	if name == `` {
		return sfield.Name
	}
	return name
}

/*
Quotes the path of a possibly nested column:

	"one"
	("one")."two"."three"
*/
func sqlPath(path []string) string {
	if len(path) == 1 {
		return quoteIdent(path[0])
	}

	var buf strings.Builder
	for ind, name := range path {
		if ind == 0 {
			buf.WriteString(`(` + quoteIdent(name) + `)`)
		} else {
			buf.WriteString(`.` + quoteIdent(name))
		}
	}
	return buf.String()
}

func isScannableRtype(rtype r.Type) bool {
	return rtype != nil &&
		(rtype == typeTime || r.PointerTo(rtype).Implements(sqlScannerRtype))
}

/*
Normalizes the value by attempting SQL encoding. Used for detecting nils, which
influences `StructConds`.
*/
func normValue(val any) (any, error) {
	valuer, ok := val.(driver.Valuer)
	if ok {
		if refut.IsNil(valuer) {
			return nil, nil
		}

		var err error
		val, err = valuer.Value()
		if err != nil {
			return nil, err
		}
	}

	if refut.IsNil(val) {
		return nil, nil
	}
	return val, nil
}
