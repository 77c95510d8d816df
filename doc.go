/*
SQL Fragments: composable parametrized SQL. Oriented towards writing PLAIN SQL
while keeping arguments out of the query text.

A fragment (`Frag`) is a sequence of literal text segments interleaved with
embedded values. Values may be arbitrary scalars, arrays, or other fragments.
Flattening a fragment produces a `Query`: text with Postgres-style ordinal
placeholders such as "$1", and a flat list of arguments where `Args[i-1]`
corresponds to "$i".

Key Features

• You write plain SQL. There's no DSL in Go.

• Placeholders are always numbered left to right, starting at $1, without gaps
or repeats, across any depth of nested fragments.

• Arrays are expanded into comma-separated placeholder groups, which suits
`in (...)` and `values (...)` clauses.

• Composable: fragments used as values are inlined, combining the arguments
and numbering the placeholders as appropriate.

• Fragments can be joined and combined without flattening them. Numbering is
deferred until the final `Query` is built.

• Supports templates with ordinal parameters such as "$1" and named parameters
such as ":ident", see `ListFrag` and `DictFrag`.

• Supports converting structs into SQL clauses such as `("a", "b") values
($1, $2)`, see `StructInsert` and friends.

• Any type with a `Frag() Frag` method (`Expr`) composes like a fragment. The
package ships a few: orderings parsed from client input (`Ords`), and simple
conditions such as `Eq` and `And`.

Integration with "github.com/jackc/pgx/v5" lives in the `pgxfrag` subpackage.

Examples

See `BuildQuery`, `Join`, `Combine`, `ListFrag` for examples.
*/
package sqlfrag
