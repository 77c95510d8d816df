package sqlfrag

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ordinalRegexp = regexp.MustCompile(`\$(\d+)`)

// Placeholders must be exactly $1..$N in text order, one per argument.
func assertContiguous(t testing.TB, query Query) {
	t.Helper()

	matches := ordinalRegexp.FindAllStringSubmatch(query.Text, -1)
	require.Len(t, matches, len(query.Args), "placeholders in %q", query.Text)

	for ind, match := range matches {
		assert.Equal(t, strconv.Itoa(ind+1), match[1], "placeholder %v in %q", ind, query.Text)
	}
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), ` `)
}

func counter(val int) []struct{} { return make([]struct{}, val) }
