package sqlfrag

/*
Terminal result of flattening: final SQL text with Postgres-style ordinal
placeholders, and the arguments for those placeholders. `Args[i-1]` is the
argument for "$i". Placeholders appear in the text in strictly increasing
order, starting at "$1", without gaps or repeats.

Usually obtained via `BuildQuery` or `Flatten`. Can also accumulate several
fragments, see `.Append()`.
*/
type Query struct {
	Text string
	Args []any
}

// Implement `fmt.Stringer`.
func (self Query) String() string { return self.Text }

// Shortcut for `self.Text, self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Query) Reify() (string, []any) { return self.Text, self.Args }

/*
Flattens the fragment and appends it to the query, numbering its placeholders
after the existing arguments. Adds a space before the fragment's text if the
existing text doesn't already end with whitespace or an opening delimiter.

For example, this:

	var query Query
	query.Append(Str(`select * from users`))
	query.Append(TryListFrag(`where id = $1`, 10))
	query.Append(TryListFrag(`and name = $1`, `one`))

Is equivalent to this:

	query := Query{
		Text: `select * from users where id = $1 and name = $2`,
		Args: []any{10, `one`},
	}
*/
func (self *Query) Append(frag Frag) {
	bui := Bui{[]byte(self.Text), self.Args}
	if !frag.IsEmpty() {
		bui.Space()
	}
	bui.Frag(frag)
	*self = bui.Query()
}

/*
"Zeroes" the query, keeping any already-allocated capacity of the arguments.
*/
func (self *Query) Clear() {
	self.Text = ``
	self.Args = self.Args[:0]
}
