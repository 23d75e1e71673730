// Package dom provides DOM node types for the HTML5 parser.
package dom

// NodeType represents the type of a DOM node.
type NodeType int

// Node types as defined by the DOM specification.
const (
	ElementNodeType  NodeType = 1
	TextNodeType     NodeType = 3
	CommentNodeType  NodeType = 8
	DocumentNodeType NodeType = 9
	DoctypeNodeType  NodeType = 10
)

// NodeID is a dense, 0-based identifier for a node inside an Arena.
// Id 0 always names the Arena's root (a Document or DocumentFragment).
// Ids are never reused and never reference across two different arenas.
type NodeID int

// noID marks a node that has not yet been assigned a home in an Arena.
const noID NodeID = -1

// Node is the interface implemented by all DOM node types.
type Node interface {
	// Type returns the node type.
	Type() NodeType

	// NodeID reports the node's arena id. Valid only once the node has been
	// attached (directly or via an ancestor) to a Document or DocumentFragment;
	// returns (0, false) for a freshly constructed, unattached node.
	NodeID() (NodeID, bool)

	// Parent returns the parent node, or nil if this is the root or detached.
	Parent() Node

	// SetParent reparents this node under parent, detaching it from any
	// previous parent first. SetParent(nil) detaches the node.
	SetParent(parent Node)

	// Children returns the child nodes.
	Children() []Node

	// AppendChild adds a child node.
	AppendChild(child Node)

	// InsertBefore inserts a new child before a reference child.
	InsertBefore(newChild, refChild Node)

	// RemoveChild removes a child node.
	RemoveChild(child Node)

	// ReplaceChild replaces an old child with a new child.
	// Returns the replaced child (oldChild).
	ReplaceChild(newChild, oldChild Node) Node

	// HasChildNodes returns true if this node has any children.
	HasChildNodes() bool

	// Clone creates a copy of this node.
	// If deep is true, all descendants are also cloned.
	Clone(deep bool) Node

	// arena-private plumbing; only types in this package may implement Node.
	arenaRef() *Arena
	nodeID() NodeID
	setIdentity(a *Arena, id NodeID)
	parentID() (NodeID, bool)
	setParentID(id NodeID)
	clearParentID()
	appendChildID(id NodeID)
	insertChildIDBefore(newID, refID NodeID)
	removeChildID(id NodeID)
	adoptDetachedChildren(a *Arena)
}

// baseNode provides the arena-aware plumbing shared by Document, Element,
// Text, Comment and DocumentFragment.
//
// A node starts out "detached": it has no arena, and parent/children are
// tracked directly (self/parent pointers, a plain child slice), exactly as a
// small standalone struct would. The first time the node is attached under a
// node that already belongs to an Arena, the whole detached subtree is
// adopted into that Arena in one pass and given dense ids (see Arena.adopt).
// This lets callers build a node (or a small cloned subtree) before its
// final home in the document is known -- which the adoption agency and
// template-content cloning both rely on -- while every node that ends up
// part of a parsed document is still arena-indexed, as required by the
// "arena link consistency" invariant.
type baseNode struct {
	self Node

	arena        *Arena
	id           NodeID
	parentNodeID NodeID
	childIDs     []NodeID

	parent   Node
	children []Node
}

func (n *baseNode) init(self Node) {
	n.self = self
	n.id = noID
	n.parentNodeID = noID
}

func (n *baseNode) arenaRef() *Arena { return n.arena }
func (n *baseNode) nodeID() NodeID   { return n.id }

func (n *baseNode) NodeID() (NodeID, bool) {
	if n.arena == nil {
		return 0, false
	}
	return n.id, true
}

func (n *baseNode) setIdentity(a *Arena, id NodeID) {
	n.arena = a
	n.id = id
}

func (n *baseNode) parentID() (NodeID, bool) {
	if n.parentNodeID == noID {
		return 0, false
	}
	return n.parentNodeID, true
}

func (n *baseNode) setParentID(id NodeID) { n.parentNodeID = id }
func (n *baseNode) clearParentID()        { n.parentNodeID = noID }

func (n *baseNode) appendChildID(id NodeID) {
	n.childIDs = append(n.childIDs, id)
}

func (n *baseNode) insertChildIDBefore(newID, refID NodeID) {
	for i, c := range n.childIDs {
		if c == refID {
			n.childIDs = append(n.childIDs, 0)
			copy(n.childIDs[i+1:], n.childIDs[i:])
			n.childIDs[i] = newID
			return
		}
	}
	n.childIDs = append(n.childIDs, newID)
}

func (n *baseNode) removeChildID(id NodeID) {
	for i, c := range n.childIDs {
		if c == id {
			n.childIDs = append(n.childIDs[:i], n.childIDs[i+1:]...)
			return
		}
	}
}

// adoptDetachedChildren migrates a node's pre-arena child list into the
// arena's id space once the node itself has just been registered.
func (n *baseNode) adoptDetachedChildren(a *Arena) {
	for _, child := range n.children {
		a.adopt(child)
		child.setParentID(n.id)
		n.appendChildID(child.nodeID())
	}
	n.children = nil
}

// Parent implements Node.
func (n *baseNode) Parent() Node {
	if n.arena != nil {
		if pid, ok := n.parentID(); ok {
			return n.arena.Lookup(pid)
		}
		return nil
	}
	return n.parent
}

// Children implements Node.
func (n *baseNode) Children() []Node {
	if n.arena != nil {
		out := make([]Node, 0, len(n.childIDs))
		for _, id := range n.childIDs {
			if c := n.arena.Lookup(id); c != nil {
				out = append(out, c)
			}
		}
		return out
	}
	return n.children
}

// HasChildNodes implements Node.
func (n *baseNode) HasChildNodes() bool {
	if n.arena != nil {
		return len(n.childIDs) > 0
	}
	return len(n.children) > 0
}

// SetParent implements Node. It performs the full attach/detach bookkeeping:
// removing the node from any previous parent, registering it (and its
// detached descendants) in the new parent's Arena if needed, and recording
// the new parent link.
func (n *baseNode) SetParent(parent Node) {
	if parent == nil {
		n.detach()
		return
	}

	arena := parent.arenaRef()
	if arena == nil {
		// Parent is itself detached: stay in plain-pointer mode.
		n.detachFromPlainParent()
		n.parent = parent
		return
	}

	if n.arena != arena {
		arena.adopt(n.self)
	} else {
		arena.detachFromCurrentParent(n.self)
	}
	pid, _ := parent.NodeID()
	n.self.setParentID(pid)
}

func (n *baseNode) detach() {
	if n.arena != nil {
		n.arena.Detach(n.id)
		return
	}
	n.detachFromPlainParent()
	n.parent = nil
}

func (n *baseNode) detachFromPlainParent() {
	if n.parent == nil {
		return
	}
	if bp, ok := n.parent.(interface{ removePlainChild(Node) }); ok {
		bp.removePlainChild(n.self)
	}
	n.parent = nil
}

func (n *baseNode) removePlainChild(child Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// AppendChild implements Node.
func (n *baseNode) AppendChild(child Node) {
	if n.arena == nil {
		child.SetParent(n.self)
		n.children = append(n.children, child)
		return
	}
	if child.arenaRef() != n.arena {
		n.arena.adopt(child)
	} else {
		n.arena.detachFromCurrentParent(child)
	}
	child.setParentID(n.id)
	n.appendChildID(child.nodeID())
}

// InsertBefore implements Node.
func (n *baseNode) InsertBefore(newChild, refChild Node) {
	if refChild == nil {
		n.AppendChild(newChild)
		return
	}
	if n.arena == nil {
		newChild.SetParent(n.self)
		for i, c := range n.children {
			if c == refChild {
				n.children = append(n.children[:i], n.children[i+1:]...)
				n.children = append(n.children, nil)
				copy(n.children[i+1:], n.children[i:])
				n.children[i] = newChild
				return
			}
		}
		n.children = append(n.children, newChild)
		return
	}
	if newChild.arenaRef() != n.arena {
		n.arena.adopt(newChild)
	} else {
		n.arena.detachFromCurrentParent(newChild)
	}
	refID, _ := refChild.NodeID()
	newChild.setParentID(n.id)
	n.insertChildIDBefore(newChild.nodeID(), refID)
}

// RemoveChild implements Node.
func (n *baseNode) RemoveChild(child Node) {
	if n.arena != nil {
		n.arena.Detach(child.nodeID())
		return
	}
	child.SetParent(nil)
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// ReplaceChild implements Node.
func (n *baseNode) ReplaceChild(newChild, oldChild Node) Node {
	if n.arena != nil {
		oldID := oldChild.nodeID()
		found := false
		for _, id := range n.childIDs {
			if id == oldID {
				found = true
				break
			}
		}
		if !found {
			return nil
		}
		if newChild.arenaRef() != n.arena {
			n.arena.adopt(newChild)
		} else {
			n.arena.detachFromCurrentParent(newChild)
		}
		newChild.setParentID(n.id)
		n.insertChildIDBefore(newChild.nodeID(), oldID)
		n.arena.Detach(oldID)
		return oldChild
	}
	for i, c := range n.children {
		if c == oldChild {
			newChild.SetParent(n.self)
			oldChild.SetParent(nil)
			n.children[i] = newChild
			return oldChild
		}
	}
	return nil
}
