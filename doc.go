/*
Package zss implements the core of a CSS layout engine: the pipeline that
turns a styled element tree into a geometric box tree ready for painting.

The package documented here is only the entry point. The pipeline itself is
spread over a handful of sub-packages, each mirroring one stage of the
control flow described in the package-level design notes:

	elementtree  ->  cascade  ->  style  ->  layout  ->  boxtree

Box generation (package layout) in turn drives the sizing solver (package
sizing) and the inline-formatting-context builder (also package layout), and
finishes with a cosmetic pass that fills in colors and background images
once geometry is settled.

Everything in the box tree is reached through small typed integers --
BlockRef, Subtree.ID, ifc.ID, stacking context ID -- never through pointers
that could outlive their owner. This keeps the whole box tree a single
freestanding value that callers can drop to release.

______________________________________________________________________

BSD License

Copyright (c) 2024–2026, the zss authors

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package zss

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the top-level zss tracer. Sub-packages each have their own
// unexported tracer() function, bound to the same gtrace.EngineTracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
