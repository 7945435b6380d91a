/*
Package elementtree implements the styled DOM-like tree that box generation
walks: a struct-of-arrays store of elements addressed by a generational
handle, plus a free list for destroyed slots.

This plays the role tyse's engine/dom/styledtree package plays (a tree of
StyNode wrapping an *html.Node), but where that package links nodes with
real pointers through engine/tree.Node, zss links every
edge -- parent, first/last child, next/previous sibling -- as an Element
handle into the same struct-of-arrays store, not a pointer. A destroyed and
reused slot cannot be mistaken for its predecessor because every handle
carries a generation that is checked on every access.

BSD License

Copyright (c) 2024–2026, the zss authors

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the conditions of the LICENSE
file at the root of this module are met.
*/
package elementtree

import (
	"errors"
	"fmt"

	"github.com/derekparker/trie"
	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// Category distinguishes element nodes from text nodes.
type Category uint8

const (
	// CategoryElement is a normal, potentially-stylable element node.
	CategoryElement Category = iota
	// CategoryText is a text node. Text nodes may never have children.
	CategoryText
)

// NamespaceID and NameID intern the strings of a fully-qualified element
// type into small integers, the way engine/dom/style.Property interns
// CSS property names -- except here interning is two-level (namespace,
// local name) as required by the element tree's fully-qualified type.
type NamespaceID uint8
type NameID uint16

const (
	// NamespaceNone is "no namespace", the common case for HTML-only
	// documents.
	NamespaceNone NamespaceID = 254
	// NamespaceWildcard is reserved and must never be stored at rest; it
	// exists only as a match-anything sentinel for selector matching.
	NamespaceWildcard NamespaceID = 255
	// NameAnonymous marks an unset/anonymous local name.
	NameAnonymous NameID = 0
)

// QualifiedType is a (namespace, name) pair.
type QualifiedType struct {
	Namespace NamespaceID
	Name      NameID
}

// Element is a generational handle into a Tree: (generation, index).
// The zero Element is NullElement.
type Element struct {
	generation uint32
	index      uint32
}

// NullElement is the sentinel "no element" handle. Index 0 of a Tree's
// arrays is never allocated to a real element so that the zero value of
// Element is always recognizably null.
var NullElement = Element{}

// IsNull reports whether e is the null sentinel.
func (e Element) IsNull() bool { return e == NullElement }

// ErrMaxSizeExceeded is returned by AllocateElements when the 16-bit index
// space of a Tree is exhausted.
var ErrMaxSizeExceeded = errors.New("elementtree: max element index exceeded")

// ErrGenerationExhausted is a programmer-visible condition: a slot's
// generation counter has wrapped. This is a programmer error class (the
// slot is simply never reused again; no further Element handle can safely
// reference it).
var ErrGenerationExhausted = errors.New("elementtree: generation counter exhausted for slot")

// ErrStaleHandle is returned by accessors when an Element's generation does
// not match the live generation stored at its index. In a pointer-based
// tree this would be a programmer error (undefined behavior in release
// builds);
// zss returns it as an error instead of panicking, since Go has no
// "undefined behavior build mode" and a checked error costs little next to
// a comparison that is already needed for the free list.
var ErrStaleHandle = errors.New("elementtree: stale element handle")

// ErrTextCannotHaveChildren flags an attempt to attach a child to a text
// element.
var ErrTextCannotHaveChildren = errors.New("elementtree: text elements cannot have children")

const maxIndex = 1<<16 - 1

// node is the struct-of-arrays row for one element slot.
type node struct {
	generation  uint32
	inUse       bool
	category    Category
	qtype       QualifiedType
	parent      Element
	firstChild  Element
	lastChild   Element
	next        Element
	prev        Element
	text        cords.Cord // only meaningful for CategoryText
	cascaded    CascadedValues
}

// Tree is the struct-of-arrays element store. The zero value is ready to
// use.
type Tree struct {
	nodes    []node // nodes[0] is always the unused null slot
	freeList []uint32
	names    *trie.Trie // interns local-name strings -> small ids
	nextName NameID
	nameByID map[NameID]string
}

// NewTree creates an empty element tree, pre-seeding index 0 as the
// permanently-unused null slot.
func NewTree() *Tree {
	t := &Tree{
		nodes:    make([]node, 1),
		names:    trie.New(),
		nextName: NameAnonymous + 1,
		nameByID: make(map[NameID]string),
	}
	return t
}

// Intern returns the NameID for a local name, allocating a new one the
// first time it is seen. Interning is backed by a trie so that future
// prefix-based selector matching (e.g. attribute-starts-with selectors)
// can reuse the same structure the element tree already built.
func (t *Tree) Intern(name string) NameID {
	if name == "" {
		return NameAnonymous
	}
	if v, ok := t.names.Find(name); ok {
		return v.Meta().(NameID)
	}
	id := t.nextName
	t.nextName++
	t.names.Add(name, id)
	t.nameByID[id] = name
	return id
}

// NameOf returns the interned string for id, or "" if unknown.
func (t *Tree) NameOf(id NameID) string {
	return t.nameByID[id]
}

// AllocateElements reserves n new elements, reusing free-list slots first.
// Contents of the returned elements are undefined (zero value) until
// InitElement is called on them.
func (t *Tree) AllocateElements(n int) ([]Element, error) {
	out := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		if len(t.freeList) > 0 {
			idx := t.freeList[len(t.freeList)-1]
			t.freeList = t.freeList[:len(t.freeList)-1]
			out = append(out, Element{generation: t.nodes[idx].generation, index: idx})
			continue
		}
		if len(t.nodes) > maxIndex {
			return nil, ErrMaxSizeExceeded
		}
		idx := uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{})
		out = append(out, Element{generation: 0, index: idx})
	}
	return out, nil
}

// Placement describes where a freshly-allocated element is attached in the
// tree at Init time.
type Placement struct {
	kind   placementKind
	parent Element
}

type placementKind uint8

const (
	placementOrphan placementKind = iota
	placementFirstChild
	placementLastChild
)

// Orphan places an element with no parent or siblings.
func Orphan() Placement { return Placement{kind: placementOrphan} }

// FirstChildOf places an element as the first child of parent.
func FirstChildOf(parent Element) Placement {
	return Placement{kind: placementFirstChild, parent: parent}
}

// LastChildOf places an element as the last child of parent.
func LastChildOf(parent Element) Placement {
	return Placement{kind: placementLastChild, parent: parent}
}

// InitElement initializes a previously-allocated element: sets its
// category, fully-qualified type and links it into the tree at the given
// placement.
func (t *Tree) InitElement(e Element, category Category, qtype QualifiedType, placement Placement) error {
	n := &t.nodes[e.index]
	if n.generation != e.generation {
		return ErrStaleHandle
	}
	n.inUse = true
	n.category = category
	n.qtype = qtype
	n.parent = NullElement
	n.firstChild = NullElement
	n.lastChild = NullElement
	n.next = NullElement
	n.prev = NullElement
	n.cascaded = CascadedValues{}

	switch placement.kind {
	case placementOrphan:
		return nil
	case placementFirstChild, placementLastChild:
		parent := &t.nodes[placement.parent.index]
		if parent.generation != placement.parent.generation {
			return ErrStaleHandle
		}
		if parent.category == CategoryText {
			return ErrTextCannotHaveChildren
		}
		n.parent = placement.parent
		if placement.kind == placementFirstChild {
			old := parent.firstChild
			n.next = old
			if !old.IsNull() {
				t.nodes[old.index].prev = e
			}
			parent.firstChild = e
			if parent.lastChild.IsNull() {
				parent.lastChild = e
			}
		} else {
			old := parent.lastChild
			n.prev = old
			if !old.IsNull() {
				t.nodes[old.index].next = e
			}
			parent.lastChild = e
			if parent.firstChild.IsNull() {
				parent.firstChild = e
			}
		}
		return nil
	default:
		panic("elementtree: unreachable placement kind")
	}
}

// DestroyElement unlinks e from its siblings and parent, bumps its
// generation, and returns the slot to the free list. If the generation is
// already at its maximum it is retired instead of recycled (see
// ErrGenerationExhausted) -- the slot becomes permanently unusable but that
// is exceedingly unlikely to matter at a uint32 generation width.
func (t *Tree) DestroyElement(e Element) error {
	n := &t.nodes[e.index]
	if n.generation != e.generation {
		return ErrStaleHandle
	}
	if !n.prev.IsNull() {
		t.nodes[n.prev.index].next = n.next
	} else if !n.parent.IsNull() {
		t.nodes[n.parent.index].firstChild = n.next
	}
	if !n.next.IsNull() {
		t.nodes[n.next.index].prev = n.prev
	} else if !n.parent.IsNull() {
		t.nodes[n.parent.index].lastChild = n.prev
	}
	n.inUse = false
	n.text = cords.Cord{}
	if n.generation == ^uint32(0) {
		tracer().Errorf("elementtree: generation exhausted at index %d, retiring slot", e.index)
		return ErrGenerationExhausted
	}
	n.generation++
	t.freeList = append(t.freeList, e.index)
	return nil
}

func (t *Tree) get(e Element) (*node, error) {
	if int(e.index) >= len(t.nodes) {
		return nil, ErrStaleHandle
	}
	n := &t.nodes[e.index]
	if n.generation != e.generation || !n.inUse {
		return nil, ErrStaleHandle
	}
	return n, nil
}

// Category returns the category of e.
func (t *Tree) Category(e Element) (Category, error) {
	n, err := t.get(e)
	if err != nil {
		return 0, err
	}
	return n.category, nil
}

// QualifiedType returns the fully-qualified type of e.
func (t *Tree) QualifiedType(e Element) (QualifiedType, error) {
	n, err := t.get(e)
	if err != nil {
		return QualifiedType{}, err
	}
	return n.qtype, nil
}

// Parent, FirstChild, LastChild, Next, Prev return the corresponding edge,
// or NullElement with a nil error if the edge does not exist.
func (t *Tree) Parent(e Element) (Element, error) {
	n, err := t.get(e)
	if err != nil {
		return NullElement, err
	}
	return n.parent, nil
}

func (t *Tree) FirstChild(e Element) (Element, error) {
	n, err := t.get(e)
	if err != nil {
		return NullElement, err
	}
	return n.firstChild, nil
}

func (t *Tree) LastChild(e Element) (Element, error) {
	n, err := t.get(e)
	if err != nil {
		return NullElement, err
	}
	return n.lastChild, nil
}

func (t *Tree) NextSibling(e Element) (Element, error) {
	n, err := t.get(e)
	if err != nil {
		return NullElement, err
	}
	return n.next, nil
}

func (t *Tree) PrevSibling(e Element) (Element, error) {
	n, err := t.get(e)
	if err != nil {
		return NullElement, err
	}
	return n.prev, nil
}

// SetText sets the text content of a CategoryText element. Content is
// stored as a cords.Cord rather than a plain string so that large text
// nodes built up incrementally by a streaming document loader do not incur
// repeated O(n) copies.
func (t *Tree) SetText(e Element, text string) error {
	n, err := t.get(e)
	if err != nil {
		return err
	}
	if n.category != CategoryText {
		return fmt.Errorf("elementtree: SetText on non-text element: %w", ErrTextCannotHaveChildren)
	}
	n.text = cords.FromString(text)
	return nil
}

// Text returns the text content of a text element as a plain string.
func (t *Tree) Text(e Element) (string, error) {
	n, err := t.get(e)
	if err != nil {
		return "", err
	}
	return n.text.String(), nil
}

// CascadedValues returns a pointer to the per-element cascaded-value slot so
// the cascade engine can clear and refill it in place without a second
// lookup.
func (t *Tree) CascadedValues(e Element) (*CascadedValues, error) {
	n, err := t.get(e)
	if err != nil {
		return nil, err
	}
	return &n.cascaded, nil
}

// Children returns the child elements of e in document order.
func (t *Tree) Children(e Element) ([]Element, error) {
	first, err := t.FirstChild(e)
	if err != nil {
		return nil, err
	}
	var out []Element
	for cur := first; !cur.IsNull(); {
		out = append(out, cur)
		cur, err = t.NextSibling(cur)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Walk performs a pre-order, document-order traversal of the subtree rooted
// at root, calling visit for every element including root itself. Box
// generation relies on exactly this order.
func (t *Tree) Walk(root Element, visit func(Element) error) error {
	if root.IsNull() {
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}
	children, err := t.Children(root)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := t.Walk(c, visit); err != nil {
			return err
		}
	}
	return nil
}

// invariantCheck verifies the structural invariants for element e:
// first_child null iff last_child null, sibling links symmetric. It is
// used by tests, not by the hot path.
func (t *Tree) invariantCheck(e Element) error {
	n, err := t.get(e)
	if err != nil {
		return err
	}
	if n.firstChild.IsNull() != n.lastChild.IsNull() {
		return fmt.Errorf("elementtree: first/last child null mismatch at %v", e)
	}
	for cur := n.firstChild; !cur.IsNull(); {
		curNode, err := t.get(cur)
		if err != nil {
			return err
		}
		if !curNode.next.IsNull() {
			nextNode, err := t.get(curNode.next)
			if err != nil {
				return err
			}
			if nextNode.prev != cur {
				return fmt.Errorf("elementtree: asymmetric sibling link at %v", cur)
			}
		}
		cur = curNode.next
	}
	return nil
}
