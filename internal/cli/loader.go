package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitranim/sqlfrag"
)

// TemplateArgs holds the arguments of a template: either ordinal or named,
// depending on the shape of the YAML document.
type TemplateArgs struct {
	List []any
	Dict sqlfrag.Dict
}

// ArgsError describes a malformed arguments document.
type ArgsError struct {
	Path    string
	Message string
}

func (e *ArgsError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// LoadArgs reads template arguments from a YAML file. A sequence at the top
// level provides ordinal arguments, a mapping provides named arguments. An
// empty path or an empty document provides no arguments.
//
// Values are converted by ParseArgs.
func LoadArgs(path string) (TemplateArgs, error) {
	if path == "" {
		return TemplateArgs{}, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return TemplateArgs{}, err
	}
	return ParseArgs(content)
}

// ParseArgs decodes template arguments from YAML. Within the arguments,
// sequences become arrays, and mappings with the following keys become
// fragments:
//
//	{sql: <template>, args: <arguments>}  nested template
//	{join: <separator>, frags: [...]}     fragments joined with the separator
//	{ident: <name>}                       quoted identifier
//	{raw: <text>}                         literal text
//	{scalar: <value>}                     value bound as one argument
//
// Any other mapping is an error.
func ParseArgs(content []byte) (TemplateArgs, error) {
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return TemplateArgs{}, &ArgsError{Message: err.Error()}
	}
	return convertArgs("", doc)
}

// BuildFrag makes a fragment from a template and its arguments.
func BuildFrag(src string, args TemplateArgs) (sqlfrag.Frag, error) {
	if args.Dict != nil {
		return sqlfrag.DictFrag(src, args.Dict)
	}
	return sqlfrag.ListFrag(src, args.List...)
}

func convertArgs(path string, doc any) (TemplateArgs, error) {
	switch doc := doc.(type) {
	case nil:
		return TemplateArgs{}, nil

	case []any:
		list := make([]any, len(doc))
		for ind, val := range doc {
			out, err := convertValue(fmt.Sprintf("%s[%d]", path, ind), val)
			if err != nil {
				return TemplateArgs{}, err
			}
			list[ind] = out
		}
		return TemplateArgs{List: list}, nil

	case map[string]any:
		dict := make(sqlfrag.Dict, len(doc))
		for key, val := range doc {
			out, err := convertValue(joinPath(path, key), val)
			if err != nil {
				return TemplateArgs{}, err
			}
			dict[key] = out
		}
		return TemplateArgs{Dict: dict}, nil

	default:
		return TemplateArgs{}, &ArgsError{
			Path:    path,
			Message: fmt.Sprintf("expected a sequence or a mapping of arguments, got %T", doc),
		}
	}
}

func convertValue(path string, val any) (any, error) {
	switch val := val.(type) {
	case []any:
		list := make(sqlfrag.List, len(val))
		for ind, elem := range val {
			out, err := convertValue(fmt.Sprintf("%s[%d]", path, ind), elem)
			if err != nil {
				return nil, err
			}
			list[ind] = out
		}
		return list, nil

	case map[string]any:
		return convertMapping(path, val)

	case map[any]any:
		return nil, &ArgsError{Path: path, Message: "mapping keys must be strings"}

	default:
		return val, nil
	}
}

func convertMapping(path string, val map[string]any) (any, error) {
	switch {
	case hasOnlyKeys(val, "sql", "args"):
		src, err := stringField(path, val, "sql")
		if err != nil {
			return nil, err
		}
		args, err := convertArgs(joinPath(path, "args"), val["args"])
		if err != nil {
			return nil, err
		}
		frag, err := BuildFrag(src, args)
		if err != nil {
			return nil, &ArgsError{Path: path, Message: err.Error()}
		}
		return frag, nil

	case hasOnlyKeys(val, "join", "frags"):
		sep, err := stringField(path, val, "join")
		if err != nil {
			return nil, err
		}
		elems, ok := val["frags"].([]any)
		if !ok {
			return nil, &ArgsError{Path: joinPath(path, "frags"), Message: "expected a sequence of fragments"}
		}

		frags := make([]sqlfrag.Frag, len(elems))
		for ind, elem := range elems {
			elemPath := fmt.Sprintf("%s[%d]", joinPath(path, "frags"), ind)
			out, err := convertValue(elemPath, elem)
			if err != nil {
				return nil, err
			}
			frag, ok := out.(sqlfrag.Frag)
			if !ok {
				return nil, &ArgsError{Path: elemPath, Message: fmt.Sprintf("expected a fragment, got %T", out)}
			}
			frags[ind] = frag
		}
		return sqlfrag.Combine(sep, frags...), nil

	case hasOnlyKeys(val, "ident"):
		name, err := stringField(path, val, "ident")
		if err != nil {
			return nil, err
		}
		return sqlfrag.Ident(name), nil

	case hasOnlyKeys(val, "raw"):
		text, err := stringField(path, val, "raw")
		if err != nil {
			return nil, err
		}
		return sqlfrag.Str(text), nil

	case hasOnlyKeys(val, "scalar"):
		return sqlfrag.Scalar{val["scalar"]}, nil

	default:
		return nil, &ArgsError{
			Path:    path,
			Message: fmt.Sprintf("unrecognized mapping with keys %v", sortedKeys(val)),
		}
	}
}

// The first key is required, the rest are optional.
func hasOnlyKeys(val map[string]any, keys ...string) bool {
	if _, ok := val[keys[0]]; !ok {
		return false
	}
	for key := range val {
		found := false
		for _, allowed := range keys {
			if key == allowed {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func stringField(path string, val map[string]any, key string) (string, error) {
	text, ok := val[key].(string)
	if !ok {
		return "", &ArgsError{Path: joinPath(path, key), Message: fmt.Sprintf("expected a string, got %T", val[key])}
	}
	return text, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func sortedKeys(val map[string]any) string {
	keys := make([]string, 0, len(val))
	for key := range val {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
