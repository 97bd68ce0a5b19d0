package helpers

import (
	"strings"

	"github.com/lehigh-university-libraries/soso/value"
)

// RegionKind is the shape a set of bounds describes.
type RegionKind int

const (
	RegionNone RegionKind = iota
	RegionPoint
	RegionBox
	RegionPolygon
)

func (k RegionKind) String() string {
	switch k {
	case RegionPoint:
		return "Point"
	case RegionBox:
		return "Box"
	case RegionPolygon:
		return "Polygon"
	default:
		return ""
	}
}

// Bounds holds the raw coordinate text of a geographic coverage.
type Bounds struct {
	West, East, South, North string

	// Ring is a list of "longitude,latitude" points separated by spaces.
	Ring string

	MinAltitude, MaxAltitude string
	AltitudeUnits            string
}

// Region is a classified geographic coverage.
type Region struct {
	Kind RegionKind

	Latitude  float64
	Longitude float64

	// Box is "south west north east".
	Box string

	// Polygon is a closed ring of "latitude longitude" pairs.
	Polygon string

	// Elevation is set only for a single altitude, e.g. "100 meter".
	Elevation string
}

// ClassifyRegion builds a Point when west equals east and south equals
// north, a Box for any other complete set of bounds, and a Polygon when a
// ring is given instead of bounds. Incomplete input gives RegionNone.
func ClassifyRegion(b Bounds) Region {
	elevation := Elevation(b.MinAltitude, b.MaxAltitude, b.AltitudeUnits)

	w, wok := value.Float(b.West)
	e, eok := value.Float(b.East)
	s, sok := value.Float(b.South)
	n, nok := value.Float(b.North)
	if wok && eok && sok && nok {
		if w == e && s == n {
			return Region{Kind: RegionPoint, Latitude: n, Longitude: w, Elevation: elevation}
		}
		box := strings.Join([]string{
			strings.TrimSpace(b.South),
			strings.TrimSpace(b.West),
			strings.TrimSpace(b.North),
			strings.TrimSpace(b.East),
		}, " ")
		return Region{Kind: RegionBox, Box: box, Elevation: elevation}
	}

	if polygon := RingToPolygon(b.Ring); polygon != "" {
		return Region{Kind: RegionPolygon, Polygon: polygon, Elevation: elevation}
	}
	return Region{}
}

// Elevation returns the altitude when min and max agree, with units
// appended when known. A true range gives "".
func Elevation(minAlt, maxAlt, units string) string {
	minAlt, maxAlt = strings.TrimSpace(minAlt), strings.TrimSpace(maxAlt)
	if minAlt == "" || maxAlt == "" {
		return ""
	}
	lo, lok := value.Float(minAlt)
	hi, hok := value.Float(maxAlt)
	if !lok || !hok || lo != hi {
		return ""
	}
	if units = strings.TrimSpace(units); units != "" {
		return minAlt + " " + units
	}
	return minAlt
}

// RingToPolygon converts "lon,lat lon,lat ..." to a closed
// "lat lon lat lon ..." string. Malformed points give "".
func RingToPolygon(ring string) string {
	ring = strings.ReplaceAll(strings.TrimSpace(ring), ", ", ",")
	if ring == "" {
		return ""
	}

	var points []string
	for _, pt := range strings.Fields(ring) {
		lon, lat, ok := strings.Cut(pt, ",")
		if !ok {
			return ""
		}
		if _, ok := value.Float(lon); !ok {
			return ""
		}
		if _, ok := value.Float(lat); !ok {
			return ""
		}
		points = append(points, lat+" "+lon)
	}
	if len(points) < 3 {
		return ""
	}
	if points[0] != points[len(points)-1] {
		points = append(points, points[0])
	}
	return strings.Join(points, " ")
}

// Node renders the region as a schema.org GeoCoordinates or GeoShape.
func (r Region) Node() value.Map {
	var node value.Map
	switch r.Kind {
	case RegionPoint:
		node = value.Map{
			"@type":     "GeoCoordinates",
			"latitude":  r.Latitude,
			"longitude": r.Longitude,
		}
	case RegionBox:
		node = value.Map{"@type": "GeoShape", "box": r.Box}
	case RegionPolygon:
		node = value.Map{"@type": "GeoShape", "polygon": r.Polygon}
	default:
		return nil
	}
	if r.Elevation != "" {
		node["elevation"] = r.Elevation
	}
	return node
}
