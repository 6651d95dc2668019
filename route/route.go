// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package route interpolates positions along a geographic path.
//
// A Route pre-computes cumulative distances so percentage queries are a
// binary search plus one linear interpolation. Routes are immutable once
// built; the Cache rebuilds one only on a fingerprint miss. The cache is an
// explicit object owned by whichever component issues route queries, not
// ambient package state.
package route

import (
	"fmt"
	"math"
	"sort"

	"github.com/twpayne/go-polyline"

	"github.com/gogpu/mapoverlay/geo"
)

// Route is an ordered path with cumulative distance per point, in meters.
type Route struct {
	// Points is the ordered path.
	Points []geo.Coordinate

	// Cumulative holds the distance from the first point to each point,
	// Cumulative[0] = 0.
	Cumulative []float64

	// Total is the full path length, Cumulative[len-1].
	Total float64
}

// New builds a Route from an ordered path, measuring each segment in the
// local frame anchored at the segment's start.
func New(points []geo.Coordinate) *Route {
	r := &Route{
		Points:     points,
		Cumulative: make([]float64, len(points)),
	}
	for i := 1; i < len(points); i++ {
		p := geo.ToLocal(points[i], points[i-1])
		d := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
		r.Cumulative[i] = r.Cumulative[i-1] + d
	}
	if n := len(points); n > 0 {
		r.Total = r.Cumulative[n-1]
	}
	return r
}

// PositionAtPercent returns the point at the given percentage of the route's
// total length. Percent 0 is the first path point and 100 the last; values
// outside [0, 100] are clamped. Positions are linearly interpolated within a
// segment, so the result is monotonically non-decreasing in cumulative
// distance as percent increases.
func (r *Route) PositionAtPercent(pct float64) geo.Coordinate {
	if len(r.Points) == 0 {
		return geo.Coordinate{}
	}
	if pct <= 0 || r.Total == 0 {
		return r.Points[0]
	}
	if pct >= 100 {
		return r.Points[len(r.Points)-1]
	}

	target := r.Total * pct / 100
	i := sort.SearchFloat64s(r.Cumulative, target)
	if i == 0 {
		return r.Points[0]
	}
	if r.Cumulative[i-1] == target || r.Cumulative[i] == r.Cumulative[i-1] {
		return r.Points[i-1]
	}

	t := (target - r.Cumulative[i-1]) / (r.Cumulative[i] - r.Cumulative[i-1])
	a, b := r.Points[i-1], r.Points[i]
	return geo.Coordinate{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
		Alt: a.Alt + (b.Alt-a.Alt)*t,
	}
}

// Fingerprint keys a path by its first, middle, and last points. Provider
// paths differing only in intermediate detail share a key; that is accepted
// for the overlay's use, where routes are replaced wholesale.
func Fingerprint(points []geo.Coordinate) string {
	if len(points) == 0 {
		return ""
	}
	first := points[0]
	mid := points[len(points)/2]
	last := points[len(points)-1]
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f|%.6f,%.6f",
		first.Lat, first.Lng, mid.Lat, mid.Lng, last.Lat, last.Lng)
}

// Cache memoizes built routes by path fingerprint.
type Cache struct {
	routes map[string]*Route
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{routes: map[string]*Route{}}
}

// Get returns the cached route for the path, building and storing it on a
// miss. The returned Route is shared and must be treated as immutable.
func (c *Cache) Get(points []geo.Coordinate) *Route {
	key := Fingerprint(points)
	if r, ok := c.routes[key]; ok {
		return r
	}
	r := New(points)
	c.routes[key] = r
	return r
}

// Len returns the number of cached routes.
func (c *Cache) Len() int {
	return len(c.routes)
}

// DecodePolyline decodes a provider-encoded polyline into an ordered path at
// zero altitude.
func DecodePolyline(encoded string) ([]geo.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("route: decode polyline: %w", err)
	}
	points := make([]geo.Coordinate, len(coords))
	for i, c := range coords {
		points[i] = geo.Coord(c[0], c[1])
	}
	return points, nil
}
