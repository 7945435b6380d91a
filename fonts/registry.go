package fonts

import (
	"fmt"
	"os"
	"sync"

	tlfonts "github.com/benoitkugler/textlayout/fonts"
	"github.com/benoitkugler/textlayout/fonts/truetype"
	findfont "github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	zssunit "github.com/zss-dev/zss/unit"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// Registry is the default, example Fonts implementation: it locates a
// system font file by family name via go-findfont, parses it with
// textlayout/fonts/truetype to read real ascender/descender metrics, and
// caches the resulting Face by Handle -- the
// same "store once, look up by normalized key" shape tyse's
// fontregistry.Registry uses for its own font/typecase caches.
type Registry struct {
	mu    sync.Mutex
	faces map[Handle]Face
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{faces: make(map[Handle]Face)}
}

// Get implements Fonts. An empty handle resolves to ZeroFace without
// touching the filesystem; a handle this registry cannot locate or parse
// also degrades to a zero-metrics Face rather than failing layout, per
// this package's documented fallback contract.
func (r *Registry) Get(h Handle) (Face, error) {
	if h.IsEmpty() {
		return ZeroFace, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.faces[h]; ok {
		return f, nil
	}

	f := r.load(h)
	r.faces[h] = f
	return f, nil
}

func (r *Registry) load(h Handle) Face {
	path, err := findfont.Find(h.Family)
	if err != nil {
		tracer().Infof("fonts: family %q not found on system: %v", h.Family, err)
		return zeroFace{name: h.Family}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("fonts: reading %s: %v", path, err)
		return zeroFace{name: h.Family}
	}

	loaded, err := truetype.Parse(data, false)
	if err != nil || len(loaded) == 0 {
		tracer().Errorf("fonts: parsing %s: %v", path, err)
		return zeroFace{name: h.Family}
	}
	face := loaded[0]

	var info tlfonts.FontExtents
	if extents, ok := face.FontHExtents(); ok {
		info = extents
	}

	upem := unitsPerEm(face)
	scale := func(v int32) zssunit.Unit {
		if upem == 0 {
			return 0
		}
		return zssunit.Scale(h.Size, int64(v), int64(upem))
	}

	return ttFace{
		name: fmt.Sprintf("%s@%d", h.Family, h.Size),
		metrics: Metrics{
			Ascender:  scale(int32(info.Ascender)),
			Descender: zssunit.NonNegative(scale(int32(-info.Descender))),
		},
	}
}

// unitsPerEm reads the font's design-units-per-em, defaulting to the
// common TrueType value when the face does not expose one directly.
func unitsPerEm(face tlfonts.Face) int32 {
	if upem, ok := face.(interface{ UnitsPerEm() int32 }); ok {
		if v := upem.UnitsPerEm(); v > 0 {
			return v
		}
	}
	return 1000
}

// ttFace adapts a parsed truetype face to Face.
type ttFace struct {
	name    string
	metrics Metrics
}

func (t ttFace) Identity() string  { return t.name }
func (t ttFace) Metrics() Metrics { return t.metrics }
