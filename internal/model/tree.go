package model

// TreeNode is one node of a BlockTree. A node owns its children; nodes are
// never shared between trees.
type TreeNode struct {
	Block    Block       `json:"block"`
	Children []*TreeNode `json:"children,omitempty"`
}

// AddChild appends a new node holding b as the last child of n and returns it.
func (n *TreeNode) AddChild(b Block) *TreeNode {
	child := &TreeNode{Block: b}
	n.Children = append(n.Children, child)
	return child
}

// BlockTree is an ordered tree of Blocks. Its root is a block that changed
// within the crawl window; the rest mirrors the nesting found in Notion, with
// siblings in server order.
type BlockTree struct {
	Root *TreeNode `json:"root"`
}

// NewBlockTree creates a tree whose only node holds root.
func NewBlockTree(root Block) *BlockTree {
	return &BlockTree{Root: &TreeNode{Block: root}}
}

// Walk visits every node in depth-first pre-order, passing the node depth
// (0 for the root). Returning false from fn skips the node's children.
func (t *BlockTree) Walk(fn func(node *TreeNode, depth int) bool) {
	if t == nil || t.Root == nil {
		return
	}
	walk(t.Root, 0, fn)
}

func walk(n *TreeNode, depth int, fn func(*TreeNode, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Len returns the number of nodes in the tree.
func (t *BlockTree) Len() int {
	count := 0
	t.Walk(func(*TreeNode, int) bool {
		count++
		return true
	})
	return count
}

// Blocks returns the blocks of the tree in depth-first pre-order.
func (t *BlockTree) Blocks() []Block {
	blocks := make([]Block, 0, t.Len())
	t.Walk(func(n *TreeNode, _ int) bool {
		blocks = append(blocks, n.Block)
		return true
	})
	return blocks
}
