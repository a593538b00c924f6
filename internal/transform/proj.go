// =============================================================================
// Batch Coordinate Converter - PROJ Transform Factory
// =============================================================================
//
// This module adapts the PROJ cartographic projections library (via the
// pebbe/proj cgo binding) to the engine's transform interfaces. The engine
// treats the transform as a black box: projection parameters, datums and
// accuracy are PROJ's contract, not interpreted here.
//
// A point travels the classic two-projection route: inverse-project the
// source system to geodetic radians, then forward-project the destination
// system. Geographic systems exchange lat-first degrees with the caller,
// matching the converter's table convention.
//
// =============================================================================

package transform

import (
	"fmt"

	proj "github.com/pebbe/proj/v5"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/engine"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
)

// Factory builds PROJ-backed transform pairs. Every call creates fresh
// projection objects, so a pair never outlives the code pair it was
// built for.
type Factory struct{}

var _ engine.Factory = (*Factory)(nil)

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewPair builds a transform pair for one (source, destination) code
// pair, e.g. ("epsg:29903", "epsg:4326").
func (f *Factory) NewPair(srcCode, dstCode string) (engine.Pair, error) {
	ctx := proj.NewContext()

	src, err := ctx.Create(definition(srcCode))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("create projection for %s: %w", srcCode, err)
	}
	dst, err := ctx.Create(definition(dstCode))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("create projection for %s: %w", dstCode, err)
	}

	return &pair{
		ctx:    ctx,
		src:    src,
		dst:    dst,
		srcGeo: geographic(srcCode),
		dstGeo: geographic(dstCode),
	}, nil
}

// definition builds the proj-string for a system code.
func definition(code string) string {
	if geographic(code) {
		return "+proj=latlong +datum=WGS84"
	}
	return "+init=" + code
}

// geographic reports whether the code denotes the WGS 84 lat/lon system.
func geographic(code string) bool {
	return code == refsys.WGS84Code
}

type pair struct {
	ctx    *proj.Context
	src    *proj.PJ
	dst    *proj.PJ
	srcGeo bool
	dstGeo bool
}

// Trans converts one point. Geographic values are (lat, lon) in degrees;
// projected values are (easting, northing) in the system's unit.
func (p *pair) Trans(x, y float64) (float64, float64, error) {
	// PROJ's geodetic interchange is (lon, lat) in radians.
	u, v := x, y
	if p.srcGeo {
		u, v = proj.DegToRad(y), proj.DegToRad(x)
	}

	u, v, _, _, err := p.src.Trans(proj.Inv, u, v, 0, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("inverse source projection: %w", err)
	}
	u, v, _, _, err = p.dst.Trans(proj.Fwd, u, v, 0, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("forward destination projection: %w", err)
	}

	if p.dstGeo {
		return proj.RadToDeg(v), proj.RadToDeg(u), nil
	}
	return u, v, nil
}

// Close releases the PROJ objects. The pair must not be used afterwards.
func (p *pair) Close() {
	p.ctx.Close()
}
