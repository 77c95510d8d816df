/*
Adapter between `sqlfrag` and "github.com/jackc/pgx/v5". Lets fragments be
passed to pgx query methods directly, flattening them at the last moment:

	rows, err := conn.Query(ctx, ``, pgxfrag.Rewrite(frag))

Or, more explicitly, via `Query` and `Exec`, which accept anything with the
corresponding pgx methods, such as `*pgx.Conn`, `*pgxpool.Pool` or `pgx.Tx`.
*/
package pgxfrag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mitranim/sqlfrag"
)

/*
Implements `pgx.QueryRewriter`. When passed as the only argument to a pgx query
method, pgx replaces the query text and arguments with the result of flattening
the fragment. The query text passed to pgx must be empty, since the fragment is
the entire query.
*/
type Rewriter struct{ Frag sqlfrag.Frag }

var _ = pgx.QueryRewriter(Rewriter{})

// Shortcut for `Rewriter{frag}`.
func Rewrite(frag sqlfrag.Frag) Rewriter { return Rewriter{frag} }

// Implement `pgx.QueryRewriter`.
func (self Rewriter) RewriteQuery(_ context.Context, _ *pgx.Conn, sql string, args []any) (string, []any, error) {
	if sql != `` {
		return ``, nil, sqlfrag.Err{
			Code:  sqlfrag.ErrCodeInvalidInput,
			While: `rewriting pgx query`,
			Cause: fmt.Errorf(`expected empty query text alongside fragment, got %q`, sql),
		}
	}
	if len(args) > 0 {
		return ``, nil, sqlfrag.Err{
			Code:  sqlfrag.ErrCodeInvalidInput,
			While: `rewriting pgx query`,
			Cause: fmt.Errorf(`expected no arguments besides the rewriter, got %v`, len(args)),
		}
	}

	query, _ := sqlfrag.Flatten(self.Frag, 1)
	return query.Text, query.Args, nil
}

// Subset of pgx connection methods used by `Query`.
type Querier interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// Subset of pgx connection methods used by `Exec`.
type Execer interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

// Flattens the fragment and runs it as a query returning rows.
func Query(ctx context.Context, conn Querier, frag sqlfrag.Frag) (pgx.Rows, error) {
	text, args := flatten(frag)
	return conn.Query(ctx, text, args...)
}

// Flattens the fragment and runs it as a command.
func Exec(ctx context.Context, conn Execer, frag sqlfrag.Frag) (pgconn.CommandTag, error) {
	text, args := flatten(frag)
	return conn.Exec(ctx, text, args...)
}

/*
Flattens the fragment, then collects the resulting rows into a slice via
`pgx.CollectRows`. For example:

	users, err := pgxfrag.Collect(ctx, conn, frag, pgx.RowToStructByName[User])
*/
func Collect[A any](ctx context.Context, conn Querier, frag sqlfrag.Frag, fun pgx.RowToFunc[A]) ([]A, error) {
	rows, err := Query(ctx, conn, frag)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, fun)
}

func flatten(frag sqlfrag.Frag) (string, []any) {
	query, _ := sqlfrag.Flatten(frag, 1)
	return query.Reify()
}
