package sqlfrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Query_Append(t *testing.T) {
	t.Run("without nested", func(t *testing.T) {
		var query Query
		query.Append(TryListFrag(`one = $1 and two = $2`, 10, 20))
		query.Append(TryListFrag(`and three = $1 and four = $1`, 30))
		query.Append(TryListFrag(`and five = $1 and six = $2`, 40, 50))

		assert.Equal(t, `one = $1 and two = $2 and three = $3 and four = $4 and five = $5 and six = $6`, query.String())
		assert.Equal(t, []any{10, 20, 30, 30, 40, 50}, query.Args)
		assertContiguous(t, query)
	})

	t.Run("with nested", func(t *testing.T) {
		sub0 := TryListFrag(`two = $1 and three = $2`, 20, 30)
		sub1 := TryListFrag(`five = $1 and six = $2`, 50, 60)

		var query Query
		query.Append(TryListFrag(`one = $1 and $2 and $2 and four = $3 and $4 and seven = $5`, 10, sub0, 40, sub1, 70))

		assert.Equal(
			t,
			`one = $1 and two = $2 and three = $3 and two = $4 and three = $5 and four = $6 and five = $7 and six = $8 and seven = $9`,
			query.String(),
		)
		assert.Equal(t, []any{10, 20, 30, 20, 30, 40, 50, 60, 70}, query.Args)
		assertContiguous(t, query)
	})

	t.Run("named", func(t *testing.T) {
		var query Query
		query.Append(TryDictFrag(`one = :one::text and two = :two`, Dict{`one`: 10, `two`: 20}))
		query.Append(TryDictFrag(`and three = :three and four = :three`, Dict{`three`: 30}))

		assert.Equal(t, `one = $1::text and two = $2 and three = $3 and four = $4`, query.String())
		assert.Equal(t, []any{10, 20, 30, 30}, query.Args)
	})

	t.Run("spacing", func(t *testing.T) {
		var query Query
		query.Append(Str(`select * from users where id in (`))
		query.Append(TryListFrag(`$1`, []int{10, 20}))
		query.Append(Str(`)`))
		query.Append(Frag{})
		query.Append(Str(`limit 1`))

		assert.Equal(t, `select * from users where id in ($1, $2 ) limit 1`, query.String())
	})
}

func Test_Query_Reify(t *testing.T) {
	query := TryQuery([]string{`one = `, ``}, 10)

	text, args := query.Reify()
	assert.Equal(t, `one = $1`, text)
	assert.Equal(t, []any{10}, args)
}

func Test_Query_Clear(t *testing.T) {
	query := TryQuery([]string{`one = `, ``}, 10)
	query.Clear()

	assert.Equal(t, ``, query.Text)
	assert.Empty(t, query.Args)

	query.Append(TryListFrag(`two = $1`, 20))
	assert.Equal(t, `two = $1`, query.Text)
	assert.Equal(t, []any{20}, query.Args)
}
