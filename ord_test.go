package sqlfrag

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type OrdInner struct {
	InnerTime *time.Time `json:"innerTime" db:"inner_time"`
}

type OrdOuter struct {
	Embed
	OuterName string   `json:"outerName" db:"outer_name"`
	Inner     OrdInner `json:"inner"     db:"inner"`
	Plain     string   `db:"plain"`
	OnlyJson  string   `json:"onlyJson"`
	Hidden    string   `json:"-"         db:"hidden"`
}

func Test_Ord_String(t *testing.T) {
	assert.Equal(t, `"one" asc`, OrdAsc(`one`).String())
	assert.Equal(t, `"one" desc`, OrdDesc(`one`).String())
	assert.Equal(t, `"one" asc nulls last`, OrdAscNl(`one`).String())
	assert.Equal(t, `"one" desc nulls last`, OrdDescNl(`one`).String())
	assert.Equal(t, `"one"`, Ord{Path: []string{`one`}}.String())
	assert.Equal(t, `"one" nulls first`, Ord{Path: []string{`one`}, Nulls: NullsFirst}.String())
	assert.Equal(t, `"one" desc nulls first`, Ord{Path: []string{`one`}, Dir: DirDesc, Nulls: NullsFirst}.String())

	assert.Equal(t, `("one")."two" asc`, OrdAsc(`one`, `two`).String())
	assert.Equal(t, `("one")."two"."three" desc nulls last`, OrdDescNl(`one`, `two`, `three`).String())

	assert.Equal(t, ``, OrdAsc().String())
	assert.True(t, OrdAsc().Frag().IsEmpty())
}

func Test_Ords_Frag(t *testing.T) {
	assert.True(t, Ords{}.Frag().IsEmpty())
	assert.True(t, OrdsFrom(Frag{}, Frag{}).Frag().IsEmpty())

	ords := OrdsFrom(
		OrdAsc(`one`).Frag(),
		Frag{},
		TryListFrag(`similarity("name", $1) desc`, `query`),
		OrdDescNl(`two`, `three`).Frag(),
	)
	assert.Equal(t, 3, ords.Len())
	assert.False(t, ords.IsEmpty())

	query := flat(TryListFrag(`select * from users where id > $1 $2 limit $3`, 10, ords, 20))
	assert.Equal(
		t,
		`select * from users where id > $1 order by "one" asc, similarity("name", $2) desc, ("two")."three" desc nulls last limit $3`,
		query.Text,
	)
	assert.Equal(t, []any{10, `query`, 20}, query.Args)
}

func Test_Ords_Append_Or(t *testing.T) {
	var ords Ords
	ords.Or(OrdAsc(`one`).Frag())
	assert.Equal(t, `order by "one" asc`, ords.Frag().String())

	ords.Or(OrdAsc(`two`).Frag())
	assert.Equal(t, `order by "one" asc`, ords.Frag().String())

	ords.Append(OrdDesc(`two`).Frag())
	assert.Equal(t, `order by "one" asc, "two" desc`, ords.Frag().String())
}

func Test_Ords_parse(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		ords := OrdsFor(OrdOuter{})
		err := json.Unmarshal([]byte(`["outerName", "inner.innerTime DESC NULLS LAST", "Id asc nulls first", "Plain"]`), &ords)
		require.NoError(t, err)

		assert.Equal(
			t,
			`order by "outer_name", ("inner")."inner_time" desc nulls last, "embed_id" asc nulls first, "plain"`,
			ords.Frag().String(),
		)
	})

	t.Run("pointer and slice types", func(t *testing.T) {
		for _, typ := range []any{(*OrdOuter)(nil), []OrdOuter(nil), []*OrdOuter(nil)} {
			ords := OrdsFor(typ)
			require.NoError(t, ords.ParseSlice([]string{`outerName desc`}))
			assert.Equal(t, `order by "outer_name" desc`, ords.Frag().String())
		}
	})

	t.Run("replaces items", func(t *testing.T) {
		ords := OrdsFor(OrdOuter{})
		ords.Append(OrdAsc(`one`).Frag())
		require.NoError(t, ords.ParseSlice(nil))
		assert.True(t, ords.IsEmpty())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, src := range []string{
			`outerName sideways`,
			`outer_name`,
			`onlyJson`,
			`hidden`,
			`Hidden`,
			`inner.unknown`,
			`"outerName"`,
			``,
		} {
			ords := OrdsFor(OrdOuter{})
			err := ords.ParseSlice([]string{src})
			require.Error(t, err, src)
			assert.True(t, errors.Is(err, ErrInvalidInput), src)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		var ords Ords
		err := ords.ParseSlice([]string{`one`})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))

		ords = OrdsFor(10)
		err = ords.ParseSlice([]string{`one`})
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("invalid json", func(t *testing.T) {
		ords := OrdsFor(OrdOuter{})
		assert.Error(t, json.Unmarshal([]byte(`{}`), &ords))
	})
}

func Test_Expr_kind(t *testing.T) {
	assert.Equal(t, KindFrag, KindOf(OrdAsc(`one`)))
	assert.Equal(t, KindFrag, KindOf(Ords{}))
	assert.Equal(t, KindScalar, KindOf(Expr(nil)))

	query := flat(TryFrag([]string{`select * from users `, ``}, OrdsFrom(OrdDesc(`id`).Frag())))
	assert.Equal(t, `select * from users order by "id" desc`, query.Text)
}
