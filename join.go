package sqlfrag

// Separator used by `Join`.
const DefaultSep = ` `

// Shortcut for `JoinWith(a, b, DefaultSep)`.
func Join(a, b Frag) Frag { return JoinWith(a, b, DefaultSep) }

/*
Joins two fragments into one, as if `b` was written right after `a`, with `sep`
between them as literal text. Doesn't flatten anything: the result is a regular
fragment whose values are those of `a` followed by those of `b`.

The last segment of `a` and the first segment of `b` are merged into one
segment with `sep` in the middle, so the splice point never consumes a value.
If either operand is empty (see `Frag.IsEmpty`), the other one is returned
as-is, without adding `sep`.

For example, this:

	where := TryFrag([]string{`where id = `, ``}, 10)
	limit := TryFrag([]string{`limit `, ``}, 20)
	frag := Join(where, limit)

Is equivalent to this:

	frag := TryFrag([]string{`where id = `, ` limit `, ``}, 10, 20)
*/
func JoinWith(a, b Frag, sep string) Frag {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}

	aSegs := a.segments()
	bSegs := b.segments()
	last := len(aSegs) - 1

	segs := make([]string, 0, len(aSegs)+len(bSegs)-1)
	segs = append(segs, aSegs[:last]...)
	segs = append(segs, aSegs[last]+sep+bSegs[0])
	segs = append(segs, bSegs[1:]...)

	vals := make([]any, 0, len(a.vals)+len(b.vals))
	vals = append(vals, a.vals...)
	vals = append(vals, b.vals...)

	return Frag{segs, vals}
}

/*
Left fold of `JoinWith` over the fragments, with the same separator at every
splice. Without inputs, returns the empty fragment. With one input, returns it
as-is. Empty inputs are skipped, see `JoinWith`.

Typical use is a list of rows for an insert:

	rows := Combine(`, `,
		TryFrag([]string{`(`, `)`}, []any{`one`, 10}),
		TryFrag([]string{`(`, `)`}, []any{`two`, 20}),
	)

	query := TryQuery([]string{`insert into some_table (name, val) values `, ``}, rows)

	// insert into some_table (name, val) values ($1, $2), ($3, $4)
*/
func Combine(sep string, frags ...Frag) Frag {
	var out Frag
	for ind, frag := range frags {
		if ind == 0 {
			out = frag
			continue
		}
		out = JoinWith(out, frag, sep)
	}
	return out
}

// Wraps the fragment in parens, without flattening it.
func Parens(frag Frag) Frag {
	return Surround(`(`, frag, `)`)
}

/*
Adds literal text before and after the fragment, without flattening it and
without adding any delimiters. Unlike `JoinWith`, this modifies the outer
segments even when the fragment is empty.
*/
func Surround(prefix string, frag Frag, suffix string) Frag {
	segs := frag.Segments()
	segs[0] = prefix + segs[0]
	segs[len(segs)-1] += suffix
	return Frag{segs, frag.vals}
}

/*
Wraps the fragment into a CTE selecting only the specified expressions.

For example, this:

	frag := WrapSelect(Str(`select * from some_table`), `one, two`)

Is equivalent to this:

	frag := Str(`with _ as (select * from some_table) select one, two from _`)
*/
func WrapSelect(frag Frag, exprs string) Frag {
	return Surround(`with _ as (`, frag, `) select `+exprs+` from _`)
}
