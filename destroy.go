// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

// DestroyChildren releases every node below n. The node itself is left
// empty and stays live, the caller still owns it.
//
// The teardown uses an explicit worklist, the depth of a tree follows the
// size of the indexed terms and is not bounded.
func (n *IntermediateNode[D]) DestroyChildren() {
	n.DestroyChildrenWith(nil)
}

// DestroyChildrenWith is DestroyChildren with a caller-owned scratch
// buffer for the worklist. The buffer is returned for reuse, possibly
// grown and always empty.
func (n *IntermediateNode[D]) DestroyChildrenWith(buf []Node[D]) []Node[D] {
	root := Node[D](n)
	todo := append(buf[:0], root)

	for len(todo) > 0 {
		cur := todo[len(todo)-1]
		todo[len(todo)-1] = nil
		todo = todo[:len(todo)-1]

		if in, ok := cur.(*IntermediateNode[D]); ok {
			for c := range in.All() {
				todo = append(todo, c)
			}
			in.RemoveAllChildren()
		}

		if cur != root {
			n.pool.release(cur)
		}
	}

	return todo
}
