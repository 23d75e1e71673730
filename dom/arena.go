package dom

// Arena is the id-keyed node store backing one Document or DocumentFragment.
//
// Every node reachable from that root is registered here under a dense,
// monotonically increasing NodeID; id 0 is always the root itself. Nodes are
// never removed from the arena once inserted -- RemoveChild/Detach only
// unlink a node from its parent's child list, matching the "nodes are never
// deleted in normal operation" invariant. This mirrors node_arena.rs in the
// distilled source: a flat Vec-like store plus the four operations
// insert/attach/detach/lookup.
type Arena struct {
	nodes []Node
}

func newArena() *Arena {
	return &Arena{}
}

// Insert registers a detached node -- and any children it already holds from
// being built before its final home in the tree was known -- into the
// arena, returning its id. Insert is a no-op (returning the existing id) if
// n already belongs to this arena.
func (a *Arena) Insert(n Node) NodeID {
	if n.arenaRef() == a {
		return n.nodeID()
	}
	id := a.register(n)
	n.adoptDetachedChildren(a)
	return id
}

func (a *Arena) register(n Node) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, n)
	n.setIdentity(a, id)
	n.clearParentID()
	return id
}

// adopt is the internal spelling Insert uses when a baseNode discovers, in
// the middle of an attach, that a child still needs a home in this arena.
func (a *Arena) adopt(n Node) NodeID { return a.Insert(n) }

// Attach makes child the last child of parent, detaching it from any
// current parent first. Both ids must already be registered in this arena.
func (a *Arena) Attach(parentID, childID NodeID) {
	parent := a.Lookup(parentID)
	child := a.Lookup(childID)
	if parent == nil || child == nil {
		return
	}
	a.detachFromCurrentParent(child)
	child.setParentID(parentID)
	parent.appendChildID(childID)
}

// Detach removes id from its parent's child list. The node remains in the
// arena and keeps its id; it is simply parentless until reattached.
func (a *Arena) Detach(id NodeID) {
	n := a.Lookup(id)
	if n == nil {
		return
	}
	a.detachFromCurrentParent(n)
	n.clearParentID()
}

func (a *Arena) detachFromCurrentParent(n Node) {
	pid, ok := n.parentID()
	if !ok {
		return
	}
	if p := a.Lookup(pid); p != nil {
		p.removeChildID(n.nodeID())
	}
}

// Lookup returns the node stored at id, or nil if id is out of range.
func (a *Arena) Lookup(id NodeID) Node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// LookupMut returns the same node as Lookup; nodes are always accessed
// through pointers, so there is no separate read-only view to distinguish.
func (a *Arena) LookupMut(id NodeID) Node {
	return a.Lookup(id)
}

// Len reports how many nodes have been inserted into the arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}
