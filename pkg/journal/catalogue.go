package journal

import (
	"fmt"

	"github.com/unowned-ai/ktl/pkg/sets"
	"gopkg.in/yaml.v3"
)

// Exercise is a catalogue definition.
type Exercise struct {
	Name string
	Kind sets.Kind
	Tags []string
}

// Catalogue is the validated config section of a journal: global tags and
// exercise definitions. It is built once and only read afterwards.
type Catalogue struct {
	tags      []string
	order     []string
	exercises map[string]Exercise
}

// Lookup returns the definition of the named exercise.
func (c Catalogue) Lookup(name string) (Exercise, bool) {
	e, ok := c.exercises[name]
	return e, ok
}

// Tags returns the distinct global tags in declaration order.
func (c Catalogue) Tags() []string {
	return append([]string(nil), c.tags...)
}

// Exercises returns every definition in declaration order.
func (c Catalogue) Exercises() []Exercise {
	out := make([]Exercise, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.exercises[name])
	}
	return out
}

// Len is the number of exercises.
func (c Catalogue) Len() int { return len(c.order) }

// DecodeCatalogue validates the config section of a journal document.
func DecodeCatalogue(doc *yaml.Node) (Catalogue, error) {
	root, err := documentRoot(doc)
	if err != nil {
		return Catalogue{}, err
	}
	return decodeCatalogue(root)
}

func decodeCatalogue(root *yaml.Node) (Catalogue, error) {
	config := lookup(root, "config")
	if isNull(config) {
		return Catalogue{}, loadErrorf(ErrStructural, root, "config", "no config defined")
	}
	if !isMapping(config) {
		return Catalogue{}, loadErrorf(ErrStructural, config, "config", "must be a mapping, got %s", describe(config))
	}

	cat := Catalogue{exercises: map[string]Exercise{}}

	if tagsNode := lookup(config, "tags"); !isNull(tagsNode) {
		tags, err := stringList(tagsNode, "config.tags")
		if err != nil {
			return Catalogue{}, err
		}
		cat.tags = distinct(tags)
	}

	exercises := lookup(config, "exercises")
	if isNull(exercises) {
		return Catalogue{}, loadErrorf(ErrStructural, config, "config.exercises", "no exercises defined in config.exercises")
	}
	if !isMapping(exercises) {
		return Catalogue{}, loadErrorf(ErrTypeViolation, exercises, "config.exercises",
			"must be a mapping of exercise name to definition, got %s", describe(exercises))
	}
	if len(exercises.Content) == 0 {
		return Catalogue{}, loadErrorf(ErrStructural, exercises, "config.exercises", "no exercises defined in config.exercises")
	}

	for _, f := range fields(exercises) {
		path := "config.exercises." + f.Key
		if _, dup := cat.exercises[f.Key]; dup {
			return Catalogue{}, loadErrorf(ErrSchemaViolation, f.KeyNode, path, "exercise %q is defined more than once", f.Key)
		}
		e, err := decodeExercise(f, path)
		if err != nil {
			return Catalogue{}, err
		}
		cat.exercises[e.Name] = e
		cat.order = append(cat.order, e.Name)
	}

	return cat, nil
}

func decodeExercise(f field, path string) (Exercise, error) {
	def := f.Value
	if isNull(def) {
		return Exercise{}, loadErrorf(ErrReference, f.KeyNode, path+".type", "exercise %q has no type set in %s", f.Key, path)
	}
	if !isMapping(def) {
		return Exercise{}, loadErrorf(ErrTypeViolation, def, path, "exercise definition must be a mapping, got %s", describe(def))
	}

	attrs, err := uniqueFields(def, path, "key")
	if err != nil {
		return Exercise{}, err
	}

	var typeNode, tagsNode *yaml.Node
	for _, attr := range attrs {
		switch attr.Key {
		case "type":
			typeNode = attr.Value
		case "tags":
			tagsNode = attr.Value
		default:
			return Exercise{}, loadErrorf(ErrSchemaViolation, attr.KeyNode, path+"."+attr.Key,
				"unknown key %q in exercise definition (allowed: type, tags)", attr.Key)
		}
	}

	if isNull(typeNode) {
		return Exercise{}, loadErrorf(ErrReference, f.KeyNode, path+".type", "exercise %q has no type set in %s", f.Key, path)
	}
	if !isString(typeNode) {
		return Exercise{}, loadErrorf(ErrTypeViolation, typeNode, path+".type", "must be a string, got %s", describe(typeNode))
	}
	kind, err := sets.ParseKind(typeNode.Value)
	if err != nil {
		e := loadErrorf(ErrSchemaViolation, typeNode, path+".type", "%v", err)
		e.Err = err
		return Exercise{}, e
	}

	e := Exercise{Name: f.Key, Kind: kind}
	if !isNull(tagsNode) {
		tags, err := stringList(tagsNode, path+".tags")
		if err != nil {
			return Exercise{}, err
		}
		e.Tags = distinct(tags)
	}
	return e, nil
}

// stringList decodes a list whose items must all be YAML strings.
func stringList(n *yaml.Node, path string) ([]string, error) {
	if !isSequence(n) {
		return nil, loadErrorf(ErrTypeViolation, n, path, "must be a list of strings, got %s", describe(n))
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		if !isString(item) {
			return nil, loadErrorf(ErrTypeViolation, item, fmt.Sprintf("%s[%d]", path, i), "tag must be a string, got %s", describe(item))
		}
		out = append(out, item.Value)
	}
	return out, nil
}

func distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
