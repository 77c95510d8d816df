package sqlfrag

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitranim/sqlp"
)

/*
If true (default), unused arguments cause errors in `ListFrag` and `DictFrag`.
If false, unused arguments are ok. Turning this off can be convenient in
development, when changing queries rapidly.
*/
var CheckUnused = true

// Default capacity of the cache of parsed templates. See `ResetTemplateCache`.
const TemplateCacheSize = 1024

var templateCache atomic.Pointer[lru.Cache[string, template]]

func init() { try(ResetTemplateCache(TemplateCacheSize)) }

/*
Replaces the cache of parsed templates with an empty cache of the given
capacity. Each distinct source string passed to `ListFrag`, `DictFrag` or
`StructFrag` is parsed only once while it stays in the cache.
*/
func ResetTemplateCache(size int) error {
	cache, err := lru.New[string, template](size)
	if err != nil {
		return Err{Code: ErrCodeInvalidInput, While: `resetting template cache`, Cause: err}
	}
	templateCache.Store(cache)
	return nil
}

/*
Variant of `map[string]any` used as named arguments. See `DictFrag`.
*/
type Dict = map[string]any

/*
Makes a fragment from SQL text with Postgres-style ordinal parameters such as
"$1". Each parameter occurrence becomes a value slot holding the corresponding
argument. In the source text, the count always starts at "$1"; the final
numbering is assigned when flattening. Arguments may be fragments or arrays,
like any other values.

Quoted strings, quoted identifiers, comments and "::" casts are never mistaken
for parameters.

For example, this:

	frag, err := ListFrag(`where one = $1 and two = $2 and three = $1`, 10, 20)

Is equivalent to this:

	frag, err := MakeFrag(
		[]string{`where one = `, ` and two = `, ` and three = `, ``},
		10, 20, 10,
	)

Returns an error when: the text has unbalanced brackets; the text has named
parameters; a parameter doesn't have a corresponding argument; an argument
doesn't have a corresponding parameter (if `CheckUnused`).
*/
func ListFrag(src string, args ...any) (_ Frag, err error) {
	defer rec(&err)
	const while = `making fragment from ordinal template`

	tpl := try1(loadTemplate(src))
	vals := make([]any, len(tpl.params))
	used := make([]bool, len(args))

	for ind, param := range tpl.params {
		if param.name != `` {
			panic(Err{
				Code:  ErrCodeUnexpectedParameter,
				While: while,
				Cause: fmt.Errorf(`expected only ordinal params, got named param %q`, param),
			})
		}

		index := param.ord - 1
		if index < 0 || index >= len(args) {
			panic(Err{
				Code:  ErrCodeOrdinalOutOfBounds,
				While: while,
				Cause: fmt.Errorf(`ordinal parameter %v exceeds argument count %v`, param, len(args)),
			})
		}

		vals[ind] = args[index]
		used[index] = true
	}

	if CheckUnused {
		for index, ok := range used {
			if !ok {
				panic(Err{
					Code:  ErrCodeUnusedArgument,
					While: while,
					Cause: fmt.Errorf(`unused argument %#v at index %v`, args[index], index),
				})
			}
		}
	}

	return Frag{tpl.segs, vals}, nil
}

// Variant of `ListFrag` that panics on error.
func TryListFrag(src string, args ...any) Frag { return try1(ListFrag(src, args...)) }

/*
Makes a fragment from SQL text with named parameters such as ":ident". The keys
in the arguments map must have the form "ident", without a leading ":". Each
parameter occurrence becomes a value slot, even when the same name occurs more
than once. Arguments may be fragments or arrays, like any other values.

For example, this:

	frag, err := DictFrag(`where one = :one and two = :two`, Dict{`one`: 10, `two`: 20})

Is equivalent to this:

	frag, err := MakeFrag([]string{`where one = `, ` and two = `, ``}, 10, 20)

Returns an error when: the text has unbalanced brackets; the text has ordinal
parameters; a parameter doesn't have a corresponding argument; an argument
doesn't have a corresponding parameter (if `CheckUnused`).
*/
func DictFrag(src string, args Dict) (Frag, error) {
	return dictFrag(src, args, CheckUnused)
}

// Variant of `DictFrag` that panics on error.
func TryDictFrag(src string, args Dict) Frag { return try1(DictFrag(src, args)) }

/*
Same as `DictFrag`, but takes the named arguments from the fields of the given
struct, as described by `StructMap`. Fields not referenced by the text are
ignored. Slice fields are bound as single arguments, see `Scalar`.
*/
func StructFrag(src string, val any) (_ Frag, err error) {
	defer rec(&err)

	fields := structFields(`making fragment from struct`, val)
	args := make(Dict, len(fields))
	for _, field := range fields {
		args[field.name] = field.arg()
	}
	return dictFrag(src, args, false)
}

// Variant of `StructFrag` that panics on error.
func TryStructFrag(src string, val any) Frag { return try1(StructFrag(src, val)) }

func dictFrag(src string, args Dict, checkUnused bool) (_ Frag, err error) {
	defer rec(&err)
	const while = `making fragment from named template`

	tpl := try1(loadTemplate(src))
	vals := make([]any, len(tpl.params))
	used := make(map[string]struct{}, len(args))

	for ind, param := range tpl.params {
		if param.name == `` {
			panic(Err{
				Code:  ErrCodeUnexpectedParameter,
				While: while,
				Cause: fmt.Errorf(`expected only named params, got ordinal param %q`, param),
			})
		}

		val, ok := args[param.name]
		if !ok {
			panic(Err{
				Code:  ErrCodeMissingArgument,
				While: while,
				Cause: fmt.Errorf(`missing named argument %q`, param.name),
			})
		}

		vals[ind] = val
		used[param.name] = struct{}{}
	}

	if checkUnused {
		for key := range args {
			if _, ok := used[key]; !ok {
				panic(Err{
					Code:  ErrCodeUnusedArgument,
					While: while,
					Cause: fmt.Errorf(`unused named argument %q`, key),
				})
			}
		}
	}

	return Frag{tpl.segs, vals}, nil
}

/*
Parsed representation of a template: literal segments and the parameters
between them. Shared between all fragments made from the same source text, and
never modified after parsing.
*/
type template struct {
	segs   []string
	params []templateParam
}

// Either an ordinal parameter (`ord > 0`) or a named one.
type templateParam struct {
	ord  int
	name string
}

// Implement `fmt.Stringer` for error messages.
func (self templateParam) String() string {
	if self.name != `` {
		return `:` + self.name
	}
	return fmt.Sprintf(`$%d`, self.ord)
}

func loadTemplate(src string) (template, error) {
	cache := templateCache.Load()
	tpl, ok := cache.Get(src)
	if ok {
		return tpl, nil
	}

	tpl, err := parseTemplate(src)
	if err != nil {
		return template{}, err
	}
	cache.Add(src, tpl)
	return tpl, nil
}

func parseTemplate(src string) (out template, err error) {
	_, err = sqlp.Parse(src)
	if err != nil {
		return out, Err{
			Code:  ErrCodeInvalidTemplate,
			While: fmt.Sprintf(`parsing template %q`, src),
			Cause: err,
		}
	}

	tokenizer := sqlp.Tokenizer{Source: src}
	var buf []byte

	flush := func() {
		out.segs = append(out.segs, string(buf))
		buf = buf[:0]
	}

	for {
		node := tokenizer.Next()
		if node == nil {
			break
		}

		switch node := node.(type) {
		case sqlp.NodeOrdinalParam:
			flush()
			out.params = append(out.params, templateParam{ord: int(node)})

		case sqlp.NodeNamedParam:
			flush()
			out.params = append(out.params, templateParam{name: string(node)})

		default:
			node.Append(&buf)
		}
	}

	flush()
	return out, nil
}
