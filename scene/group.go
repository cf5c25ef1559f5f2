// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/arview/math32"
)

// Group collects nodes in a scene but does not have any content of
// its own. It does have a transform that applies to all nodes under it.
// The anchor that follows the detected marker is a Group.
type Group struct {
	NodeBase
}

// NewGroup returns a new, visible, empty [Group] with the given name.
func NewGroup(name string) *Group {
	gp := &Group{}
	gp.init(name)
	return gp
}

// Add parents the given node under this group. It returns an error if the
// node already has a parent or would create a cycle.
func (gp *Group) Add(n Node) error {
	nb := n.AsNodeBase()
	if nb.parent != nil {
		return fmt.Errorf("scene.Group.Add: node %q already has a parent", nb.Name)
	}
	for p := Node(gp); p != nil; p = p.AsNodeBase().parent {
		if p == n {
			return fmt.Errorf("scene.Group.Add: adding %q under %q would create a cycle", nb.Name, gp.Name)
		}
	}
	nb.parent = gp
	gp.children = append(gp.children, n)
	return nil
}

// Remove removes the given node from the children of this group.
// It returns false if the node is not a child of this group.
func (gp *Group) Remove(n Node) bool {
	for i, k := range gp.children {
		if k == n {
			gp.children = append(gp.children[:i], gp.children[i+1:]...)
			n.AsNodeBase().parent = nil
			return true
		}
	}
	return false
}

// SetPos sets the [Pose.Pos] position of the group
func (gp *Group) SetPos(x, y, z float32) *Group {
	gp.Pose.Pos.Set(x, y, z)
	return gp
}

// SetScale sets the [Pose.Scale] scale of the group
func (gp *Group) SetScale(x, y, z float32) *Group {
	gp.Pose.Scale.Set(x, y, z)
	return gp
}

// SetMatrix sets the transform of the group directly, as done each frame
// for the marker anchor from the detected marker pose.
func (gp *Group) SetMatrix(m math32.Matrix4) *Group {
	gp.Pose.SetMatrix(m)
	return gp
}

// Models returns the [Model] nodes directly under this group.
func (gp *Group) Models() []*Model {
	var ms []*Model
	for _, k := range gp.children {
		if m, ok := k.(*Model); ok {
			ms = append(ms, m)
		}
	}
	return ms
}

// test for impl
var _ Node = &Group{}
