package sqlfrag

import (
	r "reflect"
	"strings"

	"github.com/mitranim/refut"
)

/*
Takes a struct and generates a string of column names suitable for inclusion
into `select`. Also accepts the following inputs and automatically dereferences
them into a struct type:

	* Struct pointer.
	* Struct slice.
	* Struct slice pointer.

Nil slices and pointers are fine, as long as they carry a struct type. Any other
input causes a panic.

Nested non-scannable structs tagged with `db` become paths into composite
columns, aliased with dots:

	type Inner struct {
		Three string `db:"three"`
	}

	type Outer struct {
		One   string `db:"one"`
		Two   Inner  `db:"two"`
	}

	Cols(Outer{}) // "one", ("two")."three" as "two.three"

Also see `WrapSelectCols`.
*/
func Cols(dest any) string {
	const while = `generating struct columns for select clause`

	rtype := r.TypeOf(dest)
	if rtype == nil {
		panic(errExpectedStruct(while, nil))
	}

	rtype = refut.RtypeDeref(rtype)
	if rtype.Kind() == r.Slice {
		rtype = refut.RtypeDeref(rtype.Elem())
	}
	if rtype.Kind() != r.Struct {
		panic(errExpectedStruct(while, rtype))
	}

	var buf strings.Builder
	colNode{nodes: structColNodes(rtype)}.appendSelect(&buf, nil)
	return buf.String()
}

/*
Wraps the fragment into a CTE selecting only the columns of the given struct
type. Shortcut for `WrapSelect(frag, Cols(dest))`.
*/
func WrapSelectCols(frag Frag, dest any) Frag {
	return WrapSelect(frag, Cols(dest))
}

func structColNodes(rtype r.Type) []colNode {
	var out []colNode

	err := refut.TraverseStructRtype(rtype, func(sfield r.StructField, _ []int) error {
		name := sfieldColumnName(sfield)
		if name == `` {
			return nil
		}

		fieldRtype := refut.RtypeDeref(sfield.Type)
		if fieldRtype.Kind() == r.Struct && !isScannableRtype(fieldRtype) {
			out = append(out, colNode{name: name, nodes: structColNodes(fieldRtype)})
			return nil
		}

		out = append(out, colNode{name: name})
		return nil
	})
	try(err)
	return out
}

// Column or group of columns. A named group is a composite column.
type colNode struct {
	name  string
	nodes []colNode
}

func (self colNode) appendSelect(buf *strings.Builder, path []string) {
	if len(self.nodes) > 0 {
		if self.name != `` {
			path = append(path, self.name)
		}
		for _, node := range self.nodes {
			node.appendSelect(buf, path)
		}
		return
	}

	if self.name == `` {
		return
	}

	if buf.Len() > 0 {
		buf.WriteString(arraySep)
	}

	if len(path) == 0 {
		buf.WriteString(quoteIdent(self.name))
		return
	}

	full := append(path[:len(path):len(path)], self.name)
	buf.WriteString(sqlPath(full))
	buf.WriteString(` as `)
	buf.WriteString(quoteIdent(strings.Join(full, `.`)))
}
