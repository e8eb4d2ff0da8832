package container

import (
	"regexp"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/pixie-sh/errors-go"
)

// Configuration exposes a tree of configuration values addressable by
// dot-separated paths. Nodes returned by LookupNode are plain decoded JSON
// values (maps, slices, scalars) suitable for Decode.
type Configuration interface {
	LookupNode(path string) (any, error)
}

// jsonConfiguration is the JSON-backed Configuration. Intra-document
// references of the form ${cfg.path.to.node} are expanded at parse time, so
// repeated blocks can be written once and referenced elsewhere.
type jsonConfiguration struct {
	raw map[string]any
}

// ParseConfiguration parses data as JSON, expanding ${cfg.x} references,
// and returns a Configuration over the result.
func ParseConfiguration(data []byte) (Configuration, error) {
	expanded, err := expandConfigReferences(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to expand configuration references", ConfigurationLookupErrorCode)
	}

	var raw map[string]any
	if err = gojson.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, errors.Wrap(err, "configuration is not valid JSON", ConfigurationLookupErrorCode)
	}

	return &jsonConfiguration{raw: raw}, nil
}

func (c *jsonConfiguration) LookupNode(path string) (any, error) {
	return lookupNodePath(c.raw, path)
}

// lookupNodePath walks a decoded JSON tree by dot-separated path.
func lookupNodePath(data map[string]any, path string) (any, error) {
	if path == "" {
		return data, nil
	}

	parts := strings.Split(path, ".")
	current := data

	for i, part := range parts {
		value, exists := current[part]
		if !exists {
			return nil, errors.New("path component '%s' not found in path '%s'", part, path, ConfigurationLookupErrorCode)
		}

		if i == len(parts)-1 {
			return value, nil
		}

		next, ok := value.(map[string]any)
		if !ok {
			return nil, errors.New("path component '%s' is not an object in path '%s'", part, path, ConfigurationLookupErrorCode)
		}

		current = next
	}

	return current, nil
}

var (
	configRefPattern         = regexp.MustCompile(`["']?(\$\{cfg\.([^}]+)\})["']?`)
	unquotedConfigRefPattern = regexp.MustCompile(`:\s*(\$\{cfg\.[^}]+\})([,\s\}])`)
)

// expandConfigReferences replaces ${cfg.path} references, quoted or not,
// with the JSON nodes they point to. References are resolved against the
// document itself with the references nulled out, so a reference cannot
// point at another reference.
func expandConfigReferences(jsonStr string) (string, error) {
	// quote bare references first so the document parses
	valid := unquotedConfigRefPattern.ReplaceAllString(jsonStr, `: "$1"$2`)

	var raw map[string]any
	stripped := configRefPattern.ReplaceAllString(valid, `null`)
	if err := gojson.Unmarshal([]byte(stripped), &raw); err != nil {
		return "", errors.Wrap(err, "failed to parse configuration for reference expansion", ConfigurationLookupErrorCode)
	}

	matches := configRefPattern.FindAllStringSubmatch(jsonStr, -1)
	replacements := map[string]string{}

	for _, match := range matches {
		if len(match) < 3 {
			continue
		}

		placeholder := match[1] // ${cfg.node}
		refPath := match[2]     // node

		if _, done := replacements[placeholder]; done {
			continue
		}

		node, err := lookupNodePath(raw, refPath)
		if err != nil {
			return "", errors.Wrap(err, "failed to expand configuration reference %s", placeholder, ConfigurationLookupErrorCode)
		}

		nodeJSON, err := gojson.Marshal(node)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal referenced node %s", placeholder, ConfigurationLookupErrorCode)
		}

		replacements[placeholder] = string(nodeJSON)
	}

	result := valid
	for placeholder, replacement := range replacements {
		result = strings.ReplaceAll(result, `"`+placeholder+`"`, replacement)
		result = strings.ReplaceAll(result, placeholder, replacement)
	}

	return result, nil
}
