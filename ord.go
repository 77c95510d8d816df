package sqlfrag

import (
	"encoding/json"
	"fmt"
	r "reflect"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitranim/refut"
)

/*
Short for "orderings". Sequence of arbitrary fragments used for an SQL
"order by" clause. Empty elements are treated as non-existent. If there are no
non-empty elements, the resulting fragment is empty. Otherwise, it's "order by"
followed by comma-separated elements. Elements may have arguments, which are
numbered as usual when the enclosing query is flattened.

`.Type` is used for parsing external input. It must be a struct type. Every
field path must be found in the struct type, possibly in nested structs.
Parsing converts JSON field names into DB column names. Paths without the
corresponding pair of `json` and `db` tags cause a parse error.

Usage for parsing:

	ords := OrdsFor(SomeStruct{})
	err := ords.UnmarshalJSON([]byte(`["one asc", "two.three desc nulls last"]`))

The result is equivalent to:

	OrdsFrom(OrdAsc(`one`).Frag(), OrdDescNl(`two`, `three`).Frag())

`Ords` implements `Expr`, and can be used as a value in other fragments:

	frag := TryListFrag(`select * from some_table $1`, ords)
*/
type Ords struct {
	Items []Frag
	Type  r.Type
}

// Shortcut for creating `Ords` without a type.
func OrdsFrom(items ...Frag) Ords { return Ords{Items: items} }

/*
Shortcut for empty `Ords` intended for parsing. The input is used only as a
type carrier. See `(*Ords).ParseSlice`.
*/
func OrdsFor(val any) Ords { return Ords{Type: r.TypeOf(val)} }

// Implement `json.Unmarshaler`. Decodes a list of strings, see `.ParseSlice`.
func (self *Ords) UnmarshalJSON(input []byte) error {
	var vals []string
	err := json.Unmarshal(input, &vals)
	if err != nil {
		return err
	}
	return self.ParseSlice(vals)
}

/*
Parses strings such as "someField.otherField desc nulls last", replacing the
current items. Consults `.Type` to convert JSON field paths into DB column
paths, rejecting unknown paths. Convenient for string slices from URL queries,
form-encoded data, and so on.
*/
func (self *Ords) ParseSlice(vals []string) (err error) {
	defer rec(&err)

	items := make([]Frag, 0, len(vals))
	for _, val := range vals {
		items = append(items, self.parseOrd(val).Frag())
	}
	self.Items = items
	return nil
}

func (self Ords) parseOrd(src string) Ord {
	const while = `parsing ordering`

	match := ordRegexp.FindStringSubmatch(src)
	if match == nil {
		panic(Err{
			Code:  ErrCodeInvalidInput,
			While: while,
			Cause: fmt.Errorf(`%q is not a valid ordering string; expected format: "<ident> [asc|desc] [nulls first|last]"`, src),
		})
	}

	path, ok := loadJsonDbPaths(self.Type)[match[1]]
	if !ok {
		panic(Err{
			Code:  ErrCodeInvalidInput,
			While: while,
			Cause: fmt.Errorf(`no DB path corresponding to JSON path %q in type %v`, match[1], self.Type),
		})
	}

	return Ord{
		Path:  path,
		Dir:   parseDir(match[2]),
		Nulls: parseNulls(match[3]),
	}
}

// Implement `Expr`.
func (self Ords) Frag() Frag {
	body := Combine(arraySep, self.Items...)
	if body.IsEmpty() {
		return Frag{}
	}
	return Surround(`order by `, body, ``)
}

// Returns true if there are no non-empty items.
func (self Ords) IsEmpty() bool { return self.Len() == 0 }

// Returns the amount of non-empty items.
func (self Ords) Len() (count int) {
	for _, val := range self.Items {
		if !val.IsEmpty() {
			count++
		}
	}
	return
}

// Convenience method for appending.
func (self *Ords) Append(items ...Frag) {
	self.Items = append(self.Items, items...)
}

// If empty, replaces items with the provided fallback. Otherwise does nothing.
func (self *Ords) Or(items ...Frag) {
	if self.IsEmpty() {
		self.Items = items
	}
}

// Shortcut for an `Ord` with `DirAsc`.
func OrdAsc(path ...string) Ord { return Ord{Path: path, Dir: DirAsc} }

// Shortcut for an `Ord` with `DirDesc`.
func OrdDesc(path ...string) Ord { return Ord{Path: path, Dir: DirDesc} }

// Shortcut for an `Ord` with `DirAsc` and `NullsLast`.
func OrdAscNl(path ...string) Ord { return Ord{Path: path, Dir: DirAsc, Nulls: NullsLast} }

// Shortcut for an `Ord` with `DirDesc` and `NullsLast`.
func OrdDescNl(path ...string) Ord { return Ord{Path: path, Dir: DirDesc, Nulls: NullsLast} }

/*
Short for "ordering". Describes an SQL ordering like:

	"some_col"

	"some_col" asc

	("nested")."other_col" desc nulls last

but in a structured format. Identifiers are quoted, and their case is
preserved. `DirNone` and `NullsNone` omit the corresponding keywords, leaving
the choice to the database.
*/
type Ord struct {
	Path  []string
	Dir   Dir
	Nulls Nulls
}

// Implement `fmt.Stringer`. Returns the SQL text of the ordering.
func (self Ord) String() string {
	if len(self.Path) == 0 {
		return ``
	}

	text := sqlPath(self.Path)
	if dir := self.Dir.String(); dir != `` {
		text += ` ` + dir
	}
	if nulls := self.Nulls.String(); nulls != `` {
		text += ` ` + nulls
	}
	return text
}

// Implement `Expr`.
func (self Ord) Frag() Frag { return Str(self.String()) }

const (
	DirNone Dir = 0
	DirAsc  Dir = 1
	DirDesc Dir = 2
)

// Short for "direction". Enum for ordering direction: none, "asc", "desc".
type Dir byte

// Implement `fmt.Stringer`.
func (self Dir) String() string {
	switch self {
	case DirAsc:
		return `asc`
	case DirDesc:
		return `desc`
	default:
		return ``
	}
}

const (
	NullsNone  Nulls = 0
	NullsFirst Nulls = 1
	NullsLast  Nulls = 2
)

// Enum for nulls handling in ordering: none, "nulls first", "nulls last".
type Nulls byte

// Implement `fmt.Stringer`.
func (self Nulls) String() string {
	switch self {
	case NullsFirst:
		return `nulls first`
	case NullsLast:
		return `nulls last`
	default:
		return ``
	}
}

var ordRegexp = regexp.MustCompile(
	`^\s*((?:\w+\.)*\w+)(?i)(?:\s+(asc|desc))?(?:\s+nulls\s+(first|last))?\s*$`,
)

var jsonDbPathCache = try1(lru.New[r.Type, map[string][]string](256))

func loadJsonDbPaths(rtype r.Type) map[string][]string {
	if rtype == nil {
		panic(errExpectedStruct(`generating JSON-DB path mapping`, nil))
	}
	rtype = refut.RtypeDeref(rtype)
	if rtype.Kind() == r.Slice {
		rtype = refut.RtypeDeref(rtype.Elem())
	}
	if rtype.Kind() != r.Struct {
		panic(errExpectedStruct(`generating JSON-DB path mapping`, rtype))
	}

	out, ok := jsonDbPathCache.Get(rtype)
	if ok {
		return out
	}

	out = map[string][]string{}
	addJsonDbPaths(out, nil, nil, rtype)
	jsonDbPathCache.Add(rtype, out)
	return out
}

func addJsonDbPaths(buf map[string][]string, jsonPath, dbPath []string, rtype r.Type) {
	err := refut.TraverseStructRtype(rtype, func(sfield r.StructField, _ []int) error {
		if !sfield.IsExported() {
			return nil
		}

		dbName := sfieldColumnName(sfield)
		jsonName := sfieldJsonName(sfield)
		if dbName == `` || jsonName == `` {
			return nil
		}

		jsonNext := append(jsonPath[:len(jsonPath):len(jsonPath)], jsonName)
		dbNext := append(dbPath[:len(dbPath):len(dbPath)], dbName)
		buf[strings.Join(jsonNext, `.`)] = dbNext

		fieldRtype := refut.RtypeDeref(sfield.Type)
		if fieldRtype.Kind() == r.Struct && !isScannableRtype(fieldRtype) {
			addJsonDbPaths(buf, jsonNext, dbNext, fieldRtype)
		}
		return nil
	})
	try(err)
}

// Assumes input already matched by `ordRegexp`.
func parseDir(src string) Dir {
	switch strings.ToLower(src) {
	case `asc`:
		return DirAsc
	case `desc`:
		return DirDesc
	default:
		return DirNone
	}
}

// Assumes input already matched by `ordRegexp`.
func parseNulls(src string) Nulls {
	switch strings.ToLower(src) {
	case `first`:
		return NullsFirst
	case `last`:
		return NullsLast
	default:
		return NullsNone
	}
}
