package images

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/zss-dev/zss/unit"
)

func tracer() tracing.Trace { return gtrace.EngineTracer }

// Store is the default, example Images implementation: it reads just
// enough of a raster file to decode its header via image.DecodeConfig,
// converts the reported pixel dimensions to Units, and caches the result
// by Handle so a background image referenced from many elements is only
// opened once.
type Store struct {
	mu    sync.Mutex
	cache map[Handle]Info
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{cache: make(map[Handle]Info)}
}

// Get implements Images.
func (s *Store) Get(h Handle) (Info, error) {
	if h.IsEmpty() {
		return Info{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if info, ok := s.cache[h]; ok {
		return info, nil
	}

	info := s.load(h)
	s.cache[h] = info
	return info, nil
}

func (s *Store) load(h Handle) Info {
	f, err := os.Open(h.Source)
	if err != nil {
		tracer().Infof("images: cannot open %q: %v", h.Source, err)
		return Info{}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		tracer().Errorf("images: decoding header of %q: %v", h.Source, err)
		return Info{}
	}

	wPx, err := unit.FromPixels(int32(cfg.Width))
	if err != nil {
		tracer().Errorf("images: %q width overflows: %v", h.Source, err)
		return Info{}
	}
	hPx, err := unit.FromPixels(int32(cfg.Height))
	if err != nil {
		tracer().Errorf("images: %q height overflows: %v", h.Source, err)
		return Info{}
	}

	return Info{
		Size:    unit.Size{W: wPx, H: hPx},
		Storage: h.Source,
	}
}
