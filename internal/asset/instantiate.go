package asset

import "github.com/google/uuid"

// Instance is a live copy of a prefab's node graph placed in a scene.
type Instance struct {
	Prefab string            // source prefab name
	Root   *Node             // deep copy with fresh ids
	IDMap  map[string]string // prefab node id -> instance node id
}

// Instantiate deep-copies a prefab's node graph with fresh node ids.
// Intra-graph node refs are remapped onto the copies; prefab refs are left
// pointing at the source asset. The persisted prefab is never touched.
func Instantiate(p *Prefab) *Instance {
	inst := &Instance{
		Prefab: p.Name,
		IDMap:  make(map[string]string),
	}
	inst.Root = copyNode(p.Root, inst.IDMap)
	remapNodeRefs(inst.Root, inst.IDMap)
	return inst
}

func copyNode(n *Node, idMap map[string]string) *Node {
	cp := &Node{
		ID:     uuid.NewString(),
		Name:   n.Name,
		Active: n.Active,
		Layer:  n.Layer,
	}
	idMap[n.ID] = cp.ID
	for _, c := range n.Components {
		fields := make(map[string]any, len(c.Fields))
		for k, v := range c.Fields {
			fields[k] = v
		}
		cp.Components = append(cp.Components, &Component{Type: c.Type, Fields: fields})
	}
	for _, child := range n.Children {
		cp.Children = append(cp.Children, copyNode(child, idMap))
	}
	return cp
}

// remapNodeRefs rewrites same-graph node refs to the freshly copied ids.
// Refs to nodes outside the graph (cross-scene, unresolved) pass through.
func remapNodeRefs(n *Node, idMap map[string]string) {
	for _, c := range n.Components {
		for k := range c.Fields {
			ref, ok := FieldRef(c, k)
			if !ok || ref.Kind != RefNode || ref.Scene != "" {
				continue
			}
			if mapped, ok := idMap[ref.Node]; ok {
				ref.Node = mapped
				c.Fields[k] = ref
			}
		}
	}
	for _, child := range n.Children {
		remapNodeRefs(child, idMap)
	}
}
