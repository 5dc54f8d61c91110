package asset

import "strings"

// RefKind distinguishes the reference targets that can appear in fields.
type RefKind int

const (
	RefNone   RefKind = iota
	RefPrefab         // a persisted prefab asset, by name
	RefNode           // a live node, by id, optionally scene-qualified
)

// Ref is a typed reference field value.
//
// Persisted string forms:
//
//	prefab:<Name>
//	node:<id>
//	node:<scene>/<id>
//	node:<id>#<op>        (reference to a named operation on the target)
//
// The zero Ref persists as null.
type Ref struct {
	Kind  RefKind
	Name  string // prefab name (RefPrefab)
	Scene string // scene qualifier for cross-scene node refs (RefNode)
	Node  string // node id (RefNode)
	Op    string // optional operation name on the target node
}

// PrefabRef returns a reference to a persisted prefab asset.
func PrefabRef(name string) Ref {
	return Ref{Kind: RefPrefab, Name: name}
}

// NodeRef returns a same-scene reference to a live node.
func NodeRef(node *Node) Ref {
	return Ref{Kind: RefNode, Node: node.ID}
}

// CrossSceneNodeRef returns a reference to a node in another scene.
func CrossSceneNodeRef(scene string, node *Node) Ref {
	return Ref{Kind: RefNode, Scene: scene, Node: node.ID}
}

// OpRef returns a reference to a named operation on a live node.
func OpRef(node *Node, op string) Ref {
	return Ref{Kind: RefNode, Node: node.ID, Op: op}
}

// IsZero reports whether the ref points at nothing.
func (r Ref) IsZero() bool {
	return r.Kind == RefNone
}

// String returns the persisted form, or "" for the zero ref.
func (r Ref) String() string {
	switch r.Kind {
	case RefPrefab:
		return "prefab:" + r.Name
	case RefNode:
		s := "node:"
		if r.Scene != "" {
			s += r.Scene + "/"
		}
		s += r.Node
		if r.Op != "" {
			s += "#" + r.Op
		}
		return s
	default:
		return ""
	}
}

// MarshalYAML persists the ref in its string form; the zero ref as null.
func (r Ref) MarshalYAML() (any, error) {
	if r.IsZero() {
		return nil, nil
	}
	return r.String(), nil
}

// ParseRef parses a persisted ref string. Returns (zero, false) if s is not
// a ref form.
func ParseRef(s string) (Ref, bool) {
	switch {
	case strings.HasPrefix(s, "prefab:"):
		name := strings.TrimPrefix(s, "prefab:")
		if name == "" {
			return Ref{}, false
		}
		return Ref{Kind: RefPrefab, Name: name}, true
	case strings.HasPrefix(s, "node:"):
		rest := strings.TrimPrefix(s, "node:")
		var op string
		if i := strings.IndexByte(rest, '#'); i >= 0 {
			rest, op = rest[:i], rest[i+1:]
		}
		var scene string
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			scene, rest = rest[:i], rest[i+1:]
		}
		if rest == "" {
			return Ref{}, false
		}
		return Ref{Kind: RefNode, Scene: scene, Node: rest, Op: op}, true
	default:
		return Ref{}, false
	}
}

// FieldRef reads a ref-valued field, accepting both in-memory Ref values and
// the persisted string form (as produced by a YAML round trip).
// Returns (zero, false) for absent, null, or non-ref values.
func FieldRef(c *Component, key string) (Ref, bool) {
	if c == nil {
		return Ref{}, false
	}
	v, ok := c.Fields[key]
	if !ok || v == nil {
		return Ref{}, false
	}
	switch t := v.(type) {
	case Ref:
		if t.IsZero() {
			return Ref{}, false
		}
		return t, true
	case string:
		return ParseRef(t)
	default:
		return Ref{}, false
	}
}
