package sqlfrag

import (
	"database/sql/driver"
	r "reflect"
	"slices"
)

/*
Short for "fragment". Reusable, unflattened piece of query structure: literal
text segments interleaved with embedded values. There is always exactly one
more segment than values: value `i` sits between segments `i` and `i+1`.

Values may be arbitrary scalars, arrays (see `KindOf`), or other fragments.
Nothing is numbered until the fragment is flattened into a `Query` via
`Flatten` or `BuildQuery`, which is why fragments can be freely joined and
nested.

Fragments are immutable. The zero value is the empty fragment, equivalent to
`MakeFrag([]string{""})`.
*/
type Frag struct {
	segs []string
	vals []any
}

/*
Makes a fragment from literal segments and the values between them. Requires
`len(segs) == len(vals) + 1`, otherwise returns an error matching
`ErrMalformedFrag`. As a special case, nil or empty `segs` without values make
the empty fragment. Both inputs are copied.

For example, this:

	frag, err := MakeFrag([]string{`select * from users where id = `, ``}, 10)

Is equivalent to the following template:

	select * from users where id = ${10}
*/
func MakeFrag(segs []string, vals ...any) (Frag, error) {
	if len(segs) == 0 && len(vals) == 0 {
		return Frag{}, nil
	}
	if len(segs) != len(vals)+1 {
		return Frag{}, errMalformed(`making fragment`, len(segs), len(vals))
	}
	return Frag{slices.Clone(segs), slices.Clone(vals)}, nil
}

// Variant of `MakeFrag` that panics on error.
func TryFrag(segs []string, vals ...any) Frag { return try1(MakeFrag(segs, vals...)) }

// Makes a fragment consisting of literal text, without values.
func Str(text string) Frag { return Frag{segs: []string{text}} }

/*
Returns a copy of the literal segments. The empty fragment has exactly one
empty segment.
*/
func (self Frag) Segments() []string {
	if len(self.segs) == 0 {
		return []string{``}
	}
	return slices.Clone(self.segs)
}

// Returns a copy of the embedded values.
func (self Frag) Values() []any {
	if len(self.vals) == 0 {
		return []any{}
	}
	return slices.Clone(self.vals)
}

// Number of embedded values. Not the same as the number of arguments after
// flattening, since arrays and nested fragments expand.
func (self Frag) Len() int { return len(self.vals) }

/*
True if the fragment has no values and no text. Joining with an empty fragment
returns the other operand as-is.
*/
func (self Frag) IsEmpty() bool {
	return len(self.vals) == 0 && (len(self.segs) == 0 || (len(self.segs) == 1 && self.segs[0] == ``))
}

/*
Implement `fmt.Stringer` for debug purposes. Returns the text the fragment
would have if flattened on its own.
*/
func (self Frag) String() string {
	query, _ := Flatten(self, 1)
	return query.Text
}

// Avoids allocating the single empty segment of the empty fragment.
func (self Frag) segments() []string {
	if len(self.segs) == 0 {
		return emptySegs
	}
	return self.segs
}

var emptySegs = []string{``}

/*
Implemented by types that render into fragments, such as `Ords`. Values of such
types are inlined like fragments, see `KindOf`.
*/
type Expr interface{ Frag() Frag }

/*
Explicit array value: an ordered sequence of arbitrary elements. Flattening
expands it into comma-separated placeholders, one per element. Other slices and
arrays are also treated as arrays, see `KindOf`. This type is useful for
heterogeneous elements, or for elements that are themselves fragments.
*/
type List []any

/*
Discriminates the variants of embedded values. See `KindOf`.
*/
type Kind byte

const (
	KindScalar Kind = 0
	KindArray  Kind = 1
	KindFrag   Kind = 2
)

// Implement `fmt.Stringer` for debug purposes.
func (self Kind) String() string {
	switch self {
	case KindArray:
		return `array`
	case KindFrag:
		return `frag`
	default:
		return `scalar`
	}
}

/*
Determines how the flattening engine treats an embedded value:

	* `Frag` and non-nil `*Frag` are fragments, inlined recursively. Values
	  implementing `Expr` are converted to fragments, unless they're nil
	  pointers. Nil slices such as an empty `And` are still fragments.

	* `List` is an array. `Scalar` is a scalar.

	* Values implementing `driver.Valuer` are scalars, even when their
	  underlying type is a slice or array. This keeps types such as UUIDs and
	  driver-specific array wrappers intact.

	* `[]byte`, byte arrays and their aliases are scalars.

	* Other slices and arrays are arrays.

	* Everything else, including nil, is a scalar. Scalars are never inspected.
*/
func KindOf(val any) Kind {
	switch val := val.(type) {
	case nil:
		return KindScalar
	case Frag:
		return KindFrag
	case *Frag:
		if val != nil {
			return KindFrag
		}
		return KindScalar
	case List:
		return KindArray
	case Scalar:
		return KindScalar
	case Expr:
		if isNilPointer(val) {
			return KindScalar
		}
		return KindFrag
	case driver.Valuer:
		return KindScalar
	}

	typ := r.TypeOf(val)
	switch typ.Kind() {
	case r.Slice, r.Array:
		if typ.Elem().Kind() == r.Uint8 {
			return KindScalar
		}
		return KindArray
	default:
		return KindScalar
	}
}

// Nil slices and maps are valid expressions, for example an empty `And`.
func isNilPointer(val any) bool {
	rval := r.ValueOf(val)
	return rval.Kind() == r.Pointer && rval.IsNil()
}

// True if the value is a fragment. See `KindOf`.
func IsFrag(val any) bool { return KindOf(val) == KindFrag }

// Assumes `KindOf(val) == KindFrag`.
func fragOf(val any) Frag {
	switch val := val.(type) {
	case Frag:
		return val
	case *Frag:
		return *val
	case Expr:
		return val.Frag()
	default:
		return Frag{}
	}
}

// Assumes `KindOf(val) == KindArray`.
func arrayElems(val any) []any {
	switch val := val.(type) {
	case List:
		return val
	case []any:
		return val
	}

	rval := r.ValueOf(val)
	out := make([]any, rval.Len())
	for ind := range out {
		out[ind] = rval.Index(ind).Interface()
	}
	return out
}
