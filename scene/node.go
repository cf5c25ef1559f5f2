// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"cogentcore.org/arview/math32"
)

// Node is the interface for all scene graph nodes: [Group] and [Model].
type Node interface {

	// AsNodeBase returns the [NodeBase] for this Node,
	// which provides the core functionality of a node.
	AsNodeBase() *NodeBase
}

// NodeBase provides the core implementation of the [Node] interface.
type NodeBase struct {

	// Name is the name of the node, used for lookup with [Scene.FindNode].
	Name string

	// Visible is whether this node and its children are drawn.
	Visible bool

	// Pose is the local transform of the node relative to its parent.
	Pose Pose

	// parent is the node this node has been added to, if any.
	parent Node

	// children are the nodes parented under this node, in order added.
	children []Node
}

func (nb *NodeBase) AsNodeBase() *NodeBase {
	return nb
}

func (nb *NodeBase) init(name string) {
	nb.Name = name
	nb.Visible = true
	nb.Pose.Defaults()
}

// Parent returns the node this node was added to, or nil.
func (nb *NodeBase) Parent() Node {
	return nb.parent
}

// Children returns the child nodes of this node.
func (nb *NodeBase) Children() []Node {
	return nb.children
}

// NumChildren returns the number of child nodes.
func (nb *NodeBase) NumChildren() int {
	return len(nb.children)
}

// Pose contains the local transform of a [Node]. When Auto is set
// (the default) the Matrix is computed from Pos and Scale by [Pose.UpdateMatrix];
// otherwise the Matrix is set directly, as for the tracked anchor.
type Pose struct {

	// Pos is the position of the node.
	Pos math32.Vector3

	// Scale is the scale of the node.
	Scale math32.Vector3

	// Matrix is the local transform matrix.
	Matrix math32.Matrix4

	// Auto is whether Matrix is computed from Pos and Scale.
	Auto bool
}

// Defaults sets the pose to the identity transform with Auto on.
func (ps *Pose) Defaults() {
	ps.Pos = math32.Vector3{}
	ps.Scale = math32.Vector3Scalar(1)
	ps.Matrix = math32.Identity4()
	ps.Auto = true
}

// UpdateMatrix recomputes Matrix from Pos and Scale when Auto is set.
func (ps *Pose) UpdateMatrix() {
	if !ps.Auto {
		return
	}
	ps.Matrix.SetTransform(ps.Pos, ps.Scale)
}

// SetMatrix sets the matrix directly and turns Auto off, so that
// the matrix is no longer derived from Pos and Scale.
func (ps *Pose) SetMatrix(m math32.Matrix4) {
	ps.Matrix = m
	ps.Auto = false
}

// WorldMatrix returns the world transform of the given node,
// the product of the local matrices from the root down to the node.
func WorldMatrix(n Node) math32.Matrix4 {
	nb := n.AsNodeBase()
	nb.Pose.UpdateMatrix()
	if nb.parent == nil {
		return nb.Pose.Matrix
	}
	pm := WorldMatrix(nb.parent)
	return pm.Mul(nb.Pose.Matrix)
}

// IsVisibleInTree returns whether the node and all of its ancestors are visible.
func IsVisibleInTree(n Node) bool {
	for n != nil {
		nb := n.AsNodeBase()
		if !nb.Visible {
			return false
		}
		n = nb.parent
	}
	return true
}

// Walk calls the given function on the node and then all of its
// descendants depth-first. Returning false from fun skips the
// children of that node.
func Walk(n Node, fun func(n Node) bool) {
	if !fun(n) {
		return
	}
	for _, k := range n.AsNodeBase().children {
		Walk(k, fun)
	}
}
