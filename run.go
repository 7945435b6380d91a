package zss

import (
	"github.com/zss-dev/zss/boxtree"
	"github.com/zss-dev/zss/layout"
	"github.com/zss-dev/zss/unit"
)

// Resource-exhaustion error taxonomy. ViewportTooLarge and SizeLimitExceeded
// are ordinary Go errors Run can return; both unit.ErrViewportTooLarge and
// boxtree.ErrSizeLimitExceeded already satisfy errors.Is against these (Go's
// error-wrapping convention means a caller can check either the re-exported
// name here or the underlying package's sentinel -- see layout.Generate,
// which returns them unwrapped).
//
// OutOfMemory has no corresponding Go value: a real allocation failure
// surfaces as a runtime-fatal condition the Go runtime does not offer a
// recoverable panic for, the same "this is a runtime-level failure, not a
// returned error" reality cascade.Run's doc comment already notes for its
// own OOM case. It is named here only so the full error taxonomy is
// documented in one place, not because Run can catch it.
var (
	ViewportTooLarge  = unit.ErrViewportTooLarge
	SizeLimitExceeded = boxtree.ErrSizeLimitExceeded
)

// Run executes one layout pass: env.Tree, rooted at env.Root, already
// carrying cascaded values, is walked to produce a fresh BoxTree sized to
// viewportWpx x viewportHpx (device pixels). Run is a pure function of its
// inputs -- it never mutates env -- and never returns a partially built
// BoxTree: any failure deinits whatever was under construction before
// returning, the same rollback-on-error contract layout.Generate already
// implements.
//
// The caller owns the returned BoxTree and must call its Deinit method once
// done with it.
func Run(env *Environment, viewportWpx, viewportHpx int32) (*boxtree.BoxTree, error) {
	return layout.Generate(env.Tree, env.Root, viewportWpx, viewportHpx, env.Fonts, env.Images)
}
