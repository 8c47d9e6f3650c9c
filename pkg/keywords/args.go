package keywords

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/getsoapkit/soapkit/pkg/client"
)

// Runners pass keyword arguments as loosely typed values: scalars arrive
// as strings, parsed documents and mappings pass through by reference.
// The helpers below coerce them for the registry entries.

// splitNamed separates Robot-style trailing "name=value" arguments from
// positional ones. Only the given names are recognized; any other
// string containing '=' stays positional.
func splitNamed(args []any, names ...string) (positional []any, named map[string]string) {
	named = make(map[string]string)
	for _, arg := range args {
		s, ok := arg.(string)
		if ok {
			if key, value, found := strings.Cut(s, "="); found && isNamedArg(key, names) {
				named[key] = value
				continue
			}
		}
		positional = append(positional, arg)
	}
	return positional, named
}

func isNamedArg(key string, names []string) bool {
	for _, n := range names {
		if key == n {
			return true
		}
	}
	return false
}

func stringArg(args []any, i int, name string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing required argument %q", name)
	}
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", name, args[i])
	}
	return s, nil
}

func optionalStringArg(args []any, i int, name, fallback string) (string, error) {
	if i >= len(args) {
		return fallback, nil
	}
	return stringArg(args, i, name)
}

func docArg(args []any, i int, name string) (*etree.Document, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing required argument %q", name)
	}
	doc, ok := args[i].(*etree.Document)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a parsed XML document, got %T", name, args[i])
	}
	return doc, nil
}

func intArg(value string, name string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("argument %q must be a number, got %q", name, value)
	}
	return n, nil
}

func boolArg(value string, name string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return false, fmt.Errorf("argument %q must be a boolean, got %q", name, value)
	}
	return b, nil
}

// headersArg accepts a map or a "key:value,key2:value2" string.
func headersArg(arg any, name string) (map[string]string, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case map[string]string:
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		headers := make(map[string]string)
		for _, part := range strings.Split(v, ",") {
			key, value, found := strings.Cut(part, ":")
			if !found {
				return nil, fmt.Errorf("argument %q must use key:value pairs, got %q", name, part)
			}
			headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		return headers, nil
	default:
		return nil, fmt.Errorf("argument %q must be a header mapping, got %T", name, arg)
	}
}

// valuesArg accepts a string-valued map, coercing scalar values via
// fmt.Sprint when a loosely typed map arrives.
func valuesArg(arg any, name string) (map[string]string, error) {
	switch v := arg.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		values := make(map[string]string, len(v))
		for key, value := range v {
			values[key] = fmt.Sprint(value)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("argument %q must be a mapping of tag to value, got %T", name, arg)
	}
}

// authArg accepts a *client.BasicAuth, a [username, password] pair, or a
// "username:password" string.
func authArg(arg any, name string) (*client.BasicAuth, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case *client.BasicAuth:
		return v, nil
	case []string:
		if len(v) != 2 {
			return nil, fmt.Errorf("argument %q must be a [username, password] pair, got %d element(s)", name, len(v))
		}
		return &client.BasicAuth{Username: v[0], Password: v[1]}, nil
	case string:
		if v == "" {
			return nil, nil
		}
		user, pass, found := strings.Cut(v, ":")
		if !found {
			return nil, fmt.Errorf("argument %q must be username:password, got %q", name, v)
		}
		return &client.BasicAuth{Username: user, Password: pass}, nil
	default:
		return nil, fmt.Errorf("argument %q must be credentials, got %T", name, arg)
	}
}

// sslVerifyArg interprets the tri-state ssl_verify argument: "true"
// keeps system trust anchors, "false" disables verification, any other
// string is a CA bundle path.
func sslVerifyArg(value string) (insecure bool, caFile string) {
	switch strings.ToLower(value) {
	case "", "true":
		return false, ""
	case "false":
		return true, ""
	default:
		return false, value
	}
}
