package uidoc

import "strconv"

// RootPath is the slot path of a document's root node.
const RootPath = "root"

// WalkFunc is called for every node in pre-order. path is the node's slot
// path ("root", "root-0", "root-0-2", ...). Returning false skips the subtree.
type WalkFunc func(n *Node, parent *Node, path string) bool

// Walk visits the subtree rooted at n in pre-order.
func Walk(n *Node, fn WalkFunc) {
	walk(n, nil, RootPath, fn)
}

func walk(n, parent *Node, path string, fn WalkFunc) {
	if n == nil {
		return
	}
	if !fn(n, parent, path) {
		return
	}
	for i, ch := range n.Children {
		walk(ch, n, ChildPath(path, i), fn)
	}
}

// ChildPath returns the slot path of the i-th child under parentPath.
func ChildPath(parentPath string, i int) string {
	return parentPath + "-" + strconv.Itoa(i)
}

// Find returns the node carrying id and its parent. Both are nil on a miss.
func Find(root *Node, id string) (node, parent *Node) {
	if id == "" {
		return nil, nil
	}
	Walk(root, func(n, p *Node, _ string) bool {
		if node != nil {
			return false
		}
		if n.ID == id {
			node, parent = n, p
			return false
		}
		return true
	})
	return node, parent
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node, *Node, string) bool {
		total++
		return true
	})
	return total
}
