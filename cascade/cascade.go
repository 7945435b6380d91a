/*
Package cascade implements the cascade engine: given the three origin lists
(user, author, user-agent) that make up a document's cascade list, it
resolves per-element declared values into cascaded values, written back
into the element tree.

The traversal shape mirrors tyse's dom/cssom package, which
walks a tree of style sources and matches selectors against a styled-node
tree in document order; here the source tree is the Cascade type (a forest
of leaf/inner nodes) and the matched tree is elementtree.Tree. Ordered
sequence storage for the cascade list uses
github.com/emirpasic/gods/lists/arraylist, from the same gods collection
library the SCT reaches for (boxtree/stacking.go uses its redblacktree
for paint order).
*/
package cascade

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zss-dev/zss/decls"
	"github.com/zss-dev/zss/elementtree"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// Origin is one of the three cascade origins.
type Origin uint8

const (
	OriginUserAgent Origin = iota
	OriginUser
	OriginAuthor
)

// step pairs an origin with the importance the cascade visits it at. The
// entries are in increasing precedence: user-agent normal is weakest,
// user-agent important is strongest. Run applies each
// step's declarations via Aggregates.MergeFrom in this order, so the last
// step to touch a given field wins -- which is why the list runs low to
// high precedence rather than matching the "cascade order" prose reads in
// naively (important origins outrank every normal origin; among normal
// declarations author outranks user outranks user-agent, and among
// important ones the order is reversed).
type step struct {
	origin     Origin
	importance decls.Importance
}

var order = []step{
	{OriginUserAgent, decls.Normal},
	{OriginUser, decls.Normal},
	{OriginAuthor, decls.Normal},
	{OriginAuthor, decls.Important},
	{OriginUser, decls.Important},
	{OriginUserAgent, decls.Important},
}

// Selector abstracts CSS selector matching. zss never parses selector text
// or the selector grammar itself; a Selector is whatever an external
// stylesheet loader already resolved into a predicate over the element
// tree. This is also why cascadia/xpath are not wired here -- both operate
// over golang.org/x/net/html trees, and there is no such tree at this
// layer (see DESIGN.md).
type Selector interface {
	Matches(tree *elementtree.Tree, e elementtree.Element) bool
}

// Rule is one (selector, block) pair from a source's selector list.
type Rule struct {
	Selector Selector
	Block    decls.BlockID
}

// Source is a cascade leaf: a stylesheet or style-attribute provider.
// StyleAttributes maps elements to an (important, normal) pair of blocks;
// only author sources may populate it.
type Source struct {
	StyleAttributes map[elementtree.Element]StyleAttributeBlocks
	// ImportantRules and NormalRules are already sorted by cascade order
	// (highest first), as any cascade-list source must be.
	ImportantRules []Rule
	NormalRules    []Rule
}

// StyleAttributeBlocks is the pair of blocks (important, normal) a style
// attribute can carry.
type StyleAttributeBlocks struct {
	Important decls.BlockID
	Normal    decls.BlockID
	HasImportant bool
	HasNormal    bool
}

// Node is one node of a cascade list: either a Leaf wrapping a Source, or
// an Inner node holding a further ordered sequence of Nodes (e.g. an
// `@import`-ed sub-sheet nested inside its importing sheet).
type Node struct {
	Leaf     *Source
	Children []*Node
}

// LeafNode wraps a Source as a cascade-list leaf.
func LeafNode(s *Source) *Node { return &Node{Leaf: s} }

// InnerNode wraps an ordered sequence of child nodes.
func InnerNode(children ...*Node) *Node { return &Node{Children: children} }

// List is one origin's ordered sequence of cascade-list nodes.
type List struct {
	nodes *arraylist.List
}

// NewList builds a List from nodes in cascade order (highest order first).
func NewList(nodes ...*Node) *List {
	l := &List{nodes: arraylist.New()}
	for _, n := range nodes {
		l.nodes.Add(n)
	}
	return l
}

func (l *List) each(visit func(*Node)) {
	if l == nil {
		return
	}
	l.nodes.Each(func(_ int, v interface{}) {
		visitNode(v.(*Node), visit)
	})
}

func visitNode(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	if n.Leaf != nil {
		visit(n)
		return
	}
	for _, c := range n.Children {
		visitNode(c, visit)
	}
}

// Cascade holds the three origin lists that make up a document's cascade
// list.
type Cascade struct {
	User      *List
	Author    *List
	UserAgent *List
}

func (c *Cascade) listFor(o Origin) *List {
	switch o {
	case OriginUserAgent:
		return c.UserAgent
	case OriginUser:
		return c.User
	case OriginAuthor:
		return c.Author
	default:
		panic("cascade: unreachable origin")
	}
}

// pending accumulates, for one element, the (block, importance) pairs
// recorded in traversal order; applying them in this order is what makes
// later entries override earlier ones.
type pending struct {
	block      decls.BlockID
	importance decls.Importance
}

// Run executes a full cascade over tree, starting traversal at root for
// selector matching, and writes the resulting cascaded values back into
// tree via elementtree.Tree.CascadedValues. Traversal and matching do not
// fail; the only error Run returns is one the element tree reports (such
// as a stale handle) while the results are written back. An out-of-memory
// condition from the underlying allocators surfaces in Go as a runtime
// panic rather than a returned error.
func Run(store *decls.Store, c *Cascade, tree *elementtree.Tree, root elementtree.Element) error {
	perElement := map[elementtree.Element][]pending{}

	for _, st := range order {
		list := c.listFor(st.origin)
		list.each(func(n *Node) {
			src := n.Leaf
			if st.origin != OriginAuthor && len(src.StyleAttributes) > 0 {
				tracer().Errorf("cascade: non-author source carries style attributes; ignoring")
			} else if st.origin == OriginAuthor {
				for el, blocks := range src.StyleAttributes {
					if st.importance == decls.Important && blocks.HasImportant {
						perElement[el] = append(perElement[el], pending{blocks.Important, decls.Important})
					} else if st.importance == decls.Normal && blocks.HasNormal {
						perElement[el] = append(perElement[el], pending{blocks.Normal, decls.Normal})
					}
				}
			}
			rules := src.NormalRules
			if st.importance == decls.Important {
				rules = src.ImportantRules
			}
			for _, rule := range rules {
				_ = tree.Walk(root, func(e elementtree.Element) error {
					if rule.Selector.Matches(tree, e) {
						perElement[e] = append(perElement[e], pending{rule.Block, st.importance})
					}
					return nil
				})
			}
		})
	}

	return tree.Walk(root, func(e elementtree.Element) error {
		cv, err := tree.CascadedValues(e)
		if err != nil {
			return err
		}
		*cv = elementtree.CascadedValues{}
		for _, p := range perElement[e] {
			applyInto(store, p, cv)
		}
		return nil
	})
}

// applyInto merges one recorded (block, importance) pair into cv, field by
// field -- later calls (later in traversal order) override earlier ones
// only where they actually declare a value, per decls.Aggregates.MergeFrom.
func applyInto(store *decls.Store, p pending, cv *elementtree.CascadedValues) {
	cv.MergeFrom(decls.FromBlock(store, p.block, p.importance))
}
