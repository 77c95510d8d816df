package sqlfrag

/*
Flattens the fragment into final text and arguments, numbering placeholders
from `start`. Returns the resulting query and the next unused ordinal, which is
`start + len(query.Args)`. Callers that splice several flattened fragments into
one query thread the ordinal from one call to the next.

Traversal is a single left-to-right pass. For each value between two
segments:

	* Fragment: flattened recursively, continuing the current numbering. Its
	  text is inlined as-is, without added delimiters.

	* Array of N elements: N placeholders joined by ", ", one argument per
	  element. Elements that are fragments are inlined in place of a
	  placeholder. An empty array appends no text.

	* Scalar: one placeholder and one argument.

See `KindOf` for how values are classified. The input is never modified, so a
fragment may be flattened any number of times, concurrently.
*/
func Flatten(frag Frag, start int) (Query, int) {
	bui := MakeBui(fragTextLen(frag), len(frag.vals))
	next := appendFlat(&bui, frag.segments(), frag.vals, start)
	return bui.Query(), next
}

/*
Root entry point. Wraps the given segments and values into an implicit fragment
and flattens it, numbering placeholders from $1. Returns an error matching
`ErrMalformedFrag` when `len(segs) != len(vals) + 1`.

For example, this:

	query, err := BuildQuery(
		[]string{`select * from users where id = any(`, `)`},
		[]int{1, 2, 3},
	)

Is equivalent to this:

	query := Query{
		Text: `select * from users where id = any($1, $2, $3)`,
		Args: []any{1, 2, 3},
	}
*/
func BuildQuery(segs []string, vals ...any) (Query, error) {
	frag, err := MakeFrag(segs, vals...)
	if err != nil {
		return Query{}, err
	}
	query, _ := Flatten(frag, 1)
	return query, nil
}

// Variant of `BuildQuery` that panics on error.
func TryQuery(segs []string, vals ...any) Query {
	return try1(BuildQuery(segs, vals...))
}

func appendFlat(bui *Bui, segs []string, vals []any, ord int) int {
	for ind, seg := range segs {
		bui.Str(seg)
		if ind >= len(vals) {
			break
		}
		ord = appendValue(bui, vals[ind], ord)
	}
	return ord
}

func appendValue(bui *Bui, val any, ord int) int {
	switch KindOf(val) {
	case KindFrag:
		frag := fragOf(val)
		return appendFlat(bui, frag.segments(), frag.vals, ord)
	case KindArray:
		return appendArray(bui, arrayElems(val), ord)
	default:
		return appendScalar(bui, val, ord)
	}
}

func appendArray(bui *Bui, elems []any, ord int) int {
	for ind, elem := range elems {
		if ind > 0 {
			bui.Str(arraySep)
		}
		if IsFrag(elem) {
			frag := fragOf(elem)
			ord = appendFlat(bui, frag.segments(), frag.vals, ord)
			continue
		}
		ord = appendScalar(bui, elem, ord)
	}
	return ord
}

func appendScalar(bui *Bui, val any, ord int) int {
	if inner, ok := val.(Scalar); ok {
		val = inner[0]
	}
	bui.Param(ord)
	bui.Args = append(bui.Args, val)
	return ord + 1
}

// Rough estimate, only used for preallocation.
func fragTextLen(frag Frag) int {
	var out int
	for _, seg := range frag.segs {
		out += len(seg)
	}
	return out + len(frag.vals)*3
}
