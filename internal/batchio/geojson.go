package batchio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry holds the feature's point. Coordinates are [lon, lat] per the
// GeoJSON specification.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// GeoJSON builds a feature collection of the batch's normalized
// positions. Rows without a valid position are omitted. Properties carry
// the marker popup data: row index, id, source and result values, and a
// Google Maps link for checking the location against satellite imagery.
func GeoJSON(batch *types.Batch, srcLabel, dstLabel string) *FeatureCollection {
	fc := &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}

	limit := batch.Limit()
	for i := 0; i < limit; i++ {
		row := batch.Rows[i]
		if row.Position == nil {
			continue
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{row.Position.Lon, row.Position.Lat},
			},
			Properties: map[string]interface{}{
				"index":       i,
				"id":          row.ID,
				srcLabel:      payloadString(row.Source, false),
				dstLabel:      payloadString(row.Result, true),
				"google_maps": fmt.Sprintf("https://www.google.com/maps?q=%v,%v&t=k&z=16", row.Position.Lat, row.Position.Lon),
			},
		})
	}
	return fc
}

// WriteGeoJSON writes the feature collection for the batch to w.
func WriteGeoJSON(w io.Writer, batch *types.Batch, srcLabel, dstLabel string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(GeoJSON(batch, srcLabel, dstLabel)); err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return nil
}

// payloadString renders a payload for the marker properties. Result
// coordinates are rounded to two decimals to keep popups readable.
func payloadString(p types.Payload, rounded bool) string {
	switch v := p.(type) {
	case types.GridRef:
		return v.Ref
	case types.Coords:
		if rounded {
			return fmt.Sprintf("%.2f, %.2f", v.X, v.Y)
		}
		return fmt.Sprintf("%v, %v", v.X, v.Y)
	default:
		return ""
	}
}
