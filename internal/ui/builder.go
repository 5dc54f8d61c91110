// Package ui provides pure builders for anchored UI control subtrees.
// Each call constructs an independent subtree parented under the given node;
// there is no shared state between calls.
package ui

import "github.com/HobanGames/Reckless/internal/asset"

// Vec2 is a 2D point or size in UI space.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Layout positions a control relative to its parent: normalized anchor
// points (0..1), a pixel offset from the anchor, and a pixel size.
type Layout struct {
	AnchorMin Vec2
	AnchorMax Vec2
	Offset    Vec2
	Size      Vec2
}

// Centered returns a layout anchored at the parent's center.
func Centered(w, h float64) Layout {
	return Layout{
		AnchorMin: Vec2{0.5, 0.5},
		AnchorMax: Vec2{0.5, 0.5},
		Size:      Vec2{w, h},
	}
}

// layoutFields flattens a Layout into component field values.
func layoutFields(l Layout) map[string]any {
	return map[string]any{
		"anchor_min": l.AnchorMin,
		"anchor_max": l.AnchorMax,
		"offset":     l.Offset,
		"size":       l.Size,
	}
}

// Canvas builds a root UI canvas node parented under parent.
func Canvas(parent *asset.Node, name string) *asset.Node {
	canvas := asset.NewNode(name)
	canvas.AddComponent("ui.canvas", map[string]any{"scale_mode": "fit"})
	parent.AddChild(canvas)
	return canvas
}

// Panel builds a plain rectangular panel.
func Panel(parent *asset.Node, name string, layout Layout) *asset.Node {
	panel := asset.NewNode(name)
	panel.AddComponent("ui.panel", layoutFields(layout))
	parent.AddChild(panel)
	return panel
}

// Button builds a clickable control with a text label child. onActivate is
// the caller-supplied activation callback, stored as the button's operation
// reference.
func Button(parent *asset.Node, name string, layout Layout, label string, onActivate asset.Ref) *asset.Node {
	button := asset.NewNode(name)
	fields := layoutFields(layout)
	fields["on_activate"] = onActivate
	button.AddComponent("ui.button", fields)

	text := asset.NewNode(name + "Label")
	text.AddComponent("ui.label", map[string]any{
		"text":       label,
		"align":      "center",
		"anchor_min": Vec2{0, 0},
		"anchor_max": Vec2{1, 1},
	})
	button.AddChild(text)

	parent.AddChild(button)
	return button
}

// Bar is a value bar subtree: a background panel plus a fill region whose
// fill fraction is externally drivable in 0..1.
type Bar struct {
	Root *asset.Node
	Fill *asset.Node
}

// ValueBar builds a background + fill-region pair. The fill starts at 1.
func ValueBar(parent *asset.Node, name string, layout Layout) Bar {
	background := asset.NewNode(name)
	background.AddComponent("ui.panel", layoutFields(layout))

	fill := asset.NewNode(name + "Fill")
	fields := layoutFields(Layout{
		AnchorMin: Vec2{0, 0},
		AnchorMax: Vec2{1, 1},
	})
	fields["fill"] = 1.0
	fill.AddComponent("ui.bar", fields)
	background.AddChild(fill)

	parent.AddChild(background)
	return Bar{Root: background, Fill: fill}
}

// Label builds a static text label.
func Label(parent *asset.Node, name string, layout Layout, text string) *asset.Node {
	label := asset.NewNode(name)
	fields := layoutFields(layout)
	fields["text"] = text
	label.AddComponent("ui.label", fields)
	parent.AddChild(label)
	return label
}
