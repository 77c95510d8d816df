package sqlfrag

/*
Short for "equal". Represents SQL equality such as `A = B` or `A is null`.
Operands may be scalars or fragments. Fragments are inlined, scalars are bound
as arguments, arrays are bound as single arguments (see `Scalar`). When the
right operand is nil after `driver.Valuer` encoding, this renders `is null`.
Counterpart to `Neq`.
*/
type Eq [2]any

// Implement the `Expr` interface, making this a sub-fragment.
func (self Eq) Frag() Frag { return cmpFrag(self[0], self[1], ` = `, ` is null`) }

/*
Short for "not equal". Represents SQL non-equality such as `A <> B` or
`A is not null`. Counterpart to `Eq`.
*/
type Neq [2]any

// Implement the `Expr` interface, making this a sub-fragment.
func (self Neq) Frag() Frag { return cmpFrag(self[0], self[1], ` <> `, ` is not null`) }

/*
Represents `A = any(B)`, where `B` is bound as a single array argument, or
inlined when it's a fragment such as a subquery.
*/
type Any [2]any

// Implement the `Expr` interface, making this a sub-fragment.
func (self Any) Frag() Frag {
	return Frag{[]string{``, ` = any(`, `)`}, []any{exprArg(self[0]), exprArg(self[1])}}
}

// Represents SQL negation `not (A)`.
type Not [1]any

// Implement the `Expr` interface, making this a sub-fragment.
func (self Not) Frag() Frag {
	return Frag{[]string{`not (`, `)`}, []any{exprArg(self[0])}}
}

/*
Represents a sequence of conditions joined by the SQL `and` operator. Each
fragment operand is wrapped in parens. Scalar operands are bound as arguments.
An empty sequence renders as `true`.
*/
type And []any

// Implement the `Expr` interface, making this a sub-fragment.
func (self And) Frag() Frag { return seqFrag(self, ` and `, `true`) }

/*
Represents a sequence of conditions joined by the SQL `or` operator. Same rules
as `And`, but an empty sequence renders as `false`.
*/
type Or []any

// Implement the `Expr` interface, making this a sub-fragment.
func (self Or) Frag() Frag { return seqFrag(self, ` or `, `false`) }

func cmpFrag(lhs, rhs any, op, null string) Frag {
	val, err := normValue(rhs)
	try(err)

	if val == nil {
		return Frag{[]string{``, null}, []any{exprArg(lhs)}}
	}
	return Frag{[]string{``, op, ``}, []any{exprArg(lhs), exprArg(rhs)}}
}

func seqFrag(vals []any, sep, empty string) Frag {
	frags := make([]Frag, 0, len(vals))
	for _, val := range vals {
		if IsFrag(val) {
			frag := fragOf(val)
			if frag.IsEmpty() {
				continue
			}
			frags = append(frags, Parens(frag))
			continue
		}
		frags = append(frags, Frag{[]string{``, ``}, []any{exprArg(val)}})
	}

	if len(frags) == 0 {
		return Str(empty)
	}
	return Combine(sep, frags...)
}

func exprArg(val any) any {
	if KindOf(val) == KindArray {
		return Scalar{val}
	}
	return val
}
