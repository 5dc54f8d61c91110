// Package asset models the persisted node graphs (prefabs and scenes) and
// their schema-versioned YAML store.
package asset

import (
	"strings"

	"github.com/google/uuid"
)

// Component is one component instance attached to a node.
type Component struct {
	Type   string         `yaml:"type"`
	Fields map[string]any `yaml:"fields,omitempty"`
}

// Node is one node in a persisted graph. IDs are stable UUIDs: live-instance
// references are wired by node id, never by name.
type Node struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	Active     bool         `yaml:"active"`
	Layer      string       `yaml:"layer,omitempty"`
	Components []*Component `yaml:"components,omitempty"`
	Children   []*Node      `yaml:"children,omitempty"`
}

// Prefab is a named, reusable node graph. Instantiating it produces live
// copies; the persisted prefab itself is only ever mutated by its assembler.
type Prefab struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name"`
	Root          *Node  `yaml:"root"`
}

// Scene is a named, loadable node graph.
type Scene struct {
	SchemaVersion string  `yaml:"schema_version"`
	Name          string  `yaml:"name"`
	Nodes         []*Node `yaml:"nodes"`
}

// NewNode creates an active node with a fresh id.
func NewNode(name string) *Node {
	return &Node{
		ID:     uuid.NewString(),
		Name:   name,
		Active: true,
	}
}

// AddChild appends child and returns it for chaining.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddComponent attaches a component of the given type and returns it.
func (n *Node) AddComponent(typ string, fields map[string]any) *Component {
	if fields == nil {
		fields = map[string]any{}
	}
	c := &Component{Type: typ, Fields: fields}
	n.Components = append(n.Components, c)
	return c
}

// Component returns the first component of the given type, or nil.
func (n *Node) Component(typ string) *Component {
	for _, c := range n.Components {
		if c.Type == typ {
			return c
		}
	}
	return nil
}

// Find returns the first node named name in this subtree (depth-first), or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindByID returns the node with the given id in this subtree, or nil.
func (n *Node) FindByID(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Find returns the first node named name across all scene roots, or nil.
func (s *Scene) Find(name string) *Node {
	for _, n := range s.Nodes {
		if found := n.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindByID returns the node with the given id across all scene roots, or nil.
func (s *Scene) FindByID(id string) *Node {
	for _, n := range s.Nodes {
		if found := n.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// IsBuiltinType reports whether a component type is provided by the runtime
// itself (transform, physics.*, render.*, scene.*, ui.*) rather than
// compiled from artifacts. Builtin types never need the type registry.
func IsBuiltinType(typ string) bool {
	if typ == "transform" {
		return true
	}
	for _, prefix := range []string{"physics.", "render.", "scene.", "ui."} {
		if strings.HasPrefix(typ, prefix) {
			return true
		}
	}
	return false
}
