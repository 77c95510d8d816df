package sqlfrag

import "strconv"

/*
Prealloc tool. Makes a `Bui` with the specified capacity of the text and args
buffers.
*/
func MakeBui(textCap, argsCap int) Bui {
	return Bui{
		make([]byte, 0, textCap),
		make([]any, 0, argsCap),
	}
}

/*
Short for "builder". Output buffer of the flattening engine: accumulates query
text and arguments. Exported for custom combinators that want to flatten
several fragments into one buffer, see `(*Bui).Frag`.
*/
type Bui struct {
	Text []byte
	Args []any
}

// Returns text and args as-is.
func (self Bui) Get() ([]byte, []any) {
	return self.Text, self.Args
}

// Shortcut for `self.String(), self.Args`. Go database drivers tend to require
// `string, []any` as inputs for queries and statements.
func (self Bui) Reify() (string, []any) {
	return self.String(), self.Args
}

// Returns inner text as a string.
func (self Bui) String() string {
	return string(self.Text)
}

// Converts the buffer into a `Query`, copying the text.
func (self Bui) Query() Query {
	return Query{Text: self.String(), Args: self.Args}
}

// Increases the capacity (not length) of the text and args buffers by the
// specified amounts. If there's already enough capacity, avoids allocation.
func (self *Bui) Grow(textLen, argsLen int) {
	self.Text = growBytes(self.Text, textLen)
	self.Args = growInterfaces(self.Args, argsLen)
}

// Appends the provided string verbatim.
func (self *Bui) Str(val string) {
	self.Text = append(self.Text, val...)
}

// Adds a space if the preceding text doesn't already end with whitespace or
// an opening delimiter.
func (self *Bui) Space() {
	self.Text = maybeAppendSpace(self.Text)
}

// Appends an ordinal placeholder such as "$1".
func (self *Bui) Param(ord int) {
	self.Text = append(self.Text, ordinalParamPrefix)
	self.Text = strconv.AppendInt(self.Text, int64(ord), 10)
}

/*
Appends an argument and returns its ordinal, assuming the arguments are
numbered from 1. Doesn't append the placeholder, see `(*Bui).Param`.
*/
func (self *Bui) Arg(val any) int {
	self.Args = append(self.Args, val)
	return len(self.Args)
}

/*
Flattens the fragment into the buffer, numbering its placeholders after the
arguments already in the buffer. The text is appended without any delimiter.
*/
func (self *Bui) Frag(frag Frag) {
	appendFlat(self, frag.segments(), frag.vals, len(self.Args)+1)
}
