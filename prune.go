package peggen

// LiftUnlabeled runs pass 1 (§4.3): every unlabeled node is replaced in its
// parent's child list by its own children, recursively. The root is never
// lifted (it is always labeled by construction — ROOT wraps every parse).
func LiftUnlabeled(root *Node) *Node {
	root.Children = liftChildren(root.Children)
	return root
}

// liftChildren walks children post-order, splicing in the children of any
// unlabeled node in place of itself.
func liftChildren(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, child := range children {
		child.Children = liftChildren(child.Children)
		if child.Label == nil {
			out = append(out, child.Children...)
		} else {
			out = append(out, child)
		}
	}
	return out
}

// DropByLabel runs pass 2 (§4.3): every node whose label is in pruned is
// lifted (its children replace it) unless hard is set, in which case the
// whole subtree is discarded instead. The root itself is never dropped even
// if its label is in pruned, matching the invariant that the root label is
// unchanged by pruning.
func DropByLabel(root *Node, pruned map[string]bool, hard bool) *Node {
	root.Children = dropChildren(root.Children, pruned, hard)
	return root
}

func dropChildren(children []*Node, pruned map[string]bool, hard bool) []*Node {
	out := make([]*Node, 0, len(children))
	for _, child := range children {
		child.Children = dropChildren(child.Children, pruned, hard)
		if child.Label != nil && pruned[child.Label.String()] {
			if !hard {
				out = append(out, child.Children...)
			}
			continue
		}
		out = append(out, child)
	}
	return out
}
