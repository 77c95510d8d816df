package sqlfrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Join(t *testing.T) {
	t.Run("splices boundary segments", func(t *testing.T) {
		one := TryFrag([]string{`SELECT * FROM albums WHERE year = `, ``}, 1999)
		two := TryFrag([]string{`ORDER BY year LIMIT `, ``}, 5)

		joined := JoinWith(one, two, "\n")
		assert.Equal(t, []string{`SELECT * FROM albums WHERE year = `, "\nORDER BY year LIMIT ", ``}, joined.Segments())
		assert.Equal(t, []any{1999, 5}, joined.Values())
	})

	t.Run("default separator", func(t *testing.T) {
		joined := Join(Str(`one`), Str(`two`))
		assert.Equal(t, []string{`one two`}, joined.Segments())
	})

	t.Run("does not consume values at the splice", func(t *testing.T) {
		one := TryFrag([]string{`a = `, ``}, 10)
		two := TryFrag([]string{``, ` = b`}, 20)

		joined := JoinWith(one, two, ` and `)
		assert.Equal(t, []string{`a = `, ` and `, ` = b`}, joined.Segments())
		assert.Equal(t, `a = $1 and $2 = b`, joined.String())
	})

	t.Run("identity", func(t *testing.T) {
		frag := TryFrag([]string{`one = `, ``}, 10)

		assert.Equal(t, frag, Join(Frag{}, frag))
		assert.Equal(t, frag, Join(frag, Frag{}))
		assert.Equal(t, frag, JoinWith(Str(``), frag, `, `))
		assert.Equal(t, frag, JoinWith(frag, TryFrag([]string{``}), `, `))
		assert.True(t, Join(Frag{}, Frag{}).IsEmpty())
	})

	t.Run("associative text", func(t *testing.T) {
		one := TryFrag([]string{`one = `, ``}, 10)
		two := TryFrag([]string{`two in (`, `)`}, []int{20, 30})
		three := TryFrag([]string{`three = `, ``}, Str(`default`))

		left := JoinWith(JoinWith(one, two, ` and `), three, ` and `)
		right := JoinWith(one, JoinWith(two, three, ` and `), ` and `)

		leftQuery, _ := Flatten(left, 1)
		rightQuery, _ := Flatten(right, 1)

		assert.Equal(t, `one = $1 and two in ($2, $3) and three = default`, leftQuery.Text)
		assert.Equal(t, leftQuery, rightQuery)
	})

	t.Run("operands unchanged", func(t *testing.T) {
		one := TryFrag([]string{`one = `, ``}, 10)
		two := TryFrag([]string{`two = `, ``}, 20)

		_ = Join(one, two)

		assert.Equal(t, []string{`one = `, ``}, one.Segments())
		assert.Equal(t, []any{10}, one.Values())
		assert.Equal(t, []string{`two = `, ``}, two.Segments())
		assert.Equal(t, []any{20}, two.Values())
	})
}

func Test_Combine(t *testing.T) {
	t.Run("no inputs", func(t *testing.T) {
		frag := Combine(`, `)
		assert.True(t, frag.IsEmpty())
		assert.Equal(t, []string{``}, frag.Segments())
		assert.Equal(t, []any{}, frag.Values())
	})

	t.Run("one input", func(t *testing.T) {
		frag := TryFrag([]string{`(`, `)`}, 10)
		assert.Equal(t, frag, Combine(`, `, frag))
	})

	t.Run("skips empty inputs", func(t *testing.T) {
		frag := Combine(`, `, Frag{}, Str(`one`), Frag{}, Str(`two`), Frag{})
		assert.Equal(t, `one, two`, frag.String())
	})

	t.Run("rows", func(t *testing.T) {
		rows := Combine(",\n",
			TryFrag([]string{`(`, `)`}, []string{`Apple`, `1 Infinite Loop`}),
			TryFrag([]string{`(`, `)`}, []string{`Google`, `1600 Amphitheatre Parkway`}),
			TryFrag([]string{`(`, `)`}, []string{`Microsoft`, `One Microsoft Way`}),
			TryFrag([]string{`(`, `)`}, []string{`Amazon`, `410 Terry Ave. North`}),
		)

		query := TryQuery([]string{`INSERT INTO customers (name, address) VALUES `, ``}, rows)

		assert.Equal(t, "INSERT INTO customers (name, address) VALUES ($1, $2),\n($3, $4),\n($5, $6),\n($7, $8)", query.Text)
		assert.Equal(t, []any{
			`Apple`, `1 Infinite Loop`,
			`Google`, `1600 Amphitheatre Parkway`,
			`Microsoft`, `One Microsoft Way`,
			`Amazon`, `410 Terry Ave. North`,
		}, query.Args)
		assertContiguous(t, query)
	})
}

func Test_Surround(t *testing.T) {
	frag := TryFrag([]string{`one = `, ``}, 10)

	assert.Equal(t, `(one = $1)`, Parens(frag).String())
	assert.Equal(t, `()`, Parens(Frag{}).String())
	assert.Equal(t, `not one = $1;`, Surround(`not `, frag, `;`).String())
	assert.Equal(t, []string{`one = `, ``}, frag.Segments())

	assert.Equal(
		t,
		`with _ as (select * from users where id = $1) select id, name from _`,
		WrapSelect(TryFrag([]string{`select * from users where id = `, ``}, 10), `id, name`).String(),
	)
}
