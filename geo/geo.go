// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geo converts geographic coordinates into the overlay's local
// Cartesian frame and back.
//
// The local frame is a flat approximation anchored at a single reference
// coordinate: X grows east, Y grows up, Z grows south, all in meters.
// Points are projected through a spherical Web-Mercator forward projection
// and differenced against the reference, with the Mercator stretch corrected
// by the cosine of the reference latitude. This is accurate for overlay-scale
// offsets (city-sized scenes) and degenerates as the latitude approaches
// ±90°, where the projection is unbounded. That divergence is a documented
// limitation of the flat-frame model, not a validated error.
package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// EarthRadius is the mean Earth radius in meters used by the spherical
// projection. All distances produced by this package are relative to it.
const EarthRadius = 6371008.8

// ErrInvalidCoordinates is returned when a coordinate string cannot be
// parsed into a Coordinate.
var ErrInvalidCoordinates = errors.New("geo: invalid coordinates")

// Coordinate is a geographic position in degrees, with altitude in meters.
// Altitude is optional and defaults to zero.
type Coordinate struct {
	Lat float64
	Lng float64
	Alt float64
}

// Coord returns a Coordinate at zero altitude.
func Coord(lat, lng float64) Coordinate {
	return Coordinate{Lat: lat, Lng: lng}
}

// Coord3D returns a Coordinate with an explicit altitude in meters.
func Coord3D(lat, lng, alt float64) Coordinate {
	return Coordinate{Lat: lat, Lng: lng, Alt: alt}
}

// ParseCoordinate parses a "lng,lat" or "lng,lat,alt" string into a
// Coordinate. This is the wire form several map hosts hand around; note the
// longitude-first ordering.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return Coordinate{}, ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidCoordinates
	}
	var alt float64
	if len(parts) > 2 {
		alt, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return Coordinate{}, ErrInvalidCoordinates
		}
	}
	return Coordinate{Lat: lat, Lng: lng, Alt: alt}, nil
}

// LocalPoint is a position in the anchored local Cartesian frame, in meters.
// X is east, Y is up, Z is south of the anchor.
type LocalPoint struct {
	X float64
	Y float64
	Z float64
}

// Mercator returns the spherical Web-Mercator forward projection of c,
// in meters: x = R·λ, y = R·ln(tan(π/4 + φ/2)).
func Mercator(c Coordinate) (x, y float64) {
	lat := c.Lat * math.Pi / 180
	lng := c.Lng * math.Pi / 180
	return EarthRadius * lng, EarthRadius * math.Log(math.Tan(math.Pi/4+lat/2))
}

// MetersPerDegreeLat is the meridional meters per degree of latitude on the
// projection sphere. It does not vary with latitude.
const MetersPerDegreeLat = EarthRadius * math.Pi / 180

// MetersPerDegreeLng returns the meters per degree of longitude at the given
// latitude in degrees.
func MetersPerDegreeLng(lat float64) float64 {
	return MetersPerDegreeLat * math.Cos(lat*math.Pi/180)
}

// MetersPerProjectedUnit returns the ground meters represented by one
// projected (Mercator) meter at the given latitude in degrees. Mercator
// stretches with distance from the equator, so local metric scale must be
// evaluated at a reference latitude rather than assumed globally.
func MetersPerProjectedUnit(lat float64) float64 {
	return math.Cos(lat * math.Pi / 180)
}

// ToLocal projects point and reference through the Mercator projection,
// takes the planar difference, and corrects it by the metric scale at the
// reference latitude. The altitude difference maps directly to Y.
func ToLocal(point, reference Coordinate) LocalPoint {
	px, py := Mercator(point)
	rx, ry := Mercator(reference)
	scale := MetersPerProjectedUnit(reference.Lat)
	return LocalPoint{
		X: (px - rx) * scale,
		Y: point.Alt - reference.Alt,
		Z: -(py - ry) * scale,
	}
}

// ToGeo is the small-offset inverse of ToLocal for the horizontal plane.
// It converts a local (x, z) offset in meters back to a geographic
// coordinate using the per-meter latitude and longitude deltas evaluated at
// the origin's latitude. No Mercator correction is applied on the way back,
// so it is only valid for offsets small relative to EarthRadius, which is
// what overlay-scale scenes produce. The returned altitude is the origin's.
func ToGeo(x, z float64, origin Coordinate) Coordinate {
	return Coordinate{
		Lat: origin.Lat - z/MetersPerDegreeLat,
		Lng: origin.Lng + x/MetersPerDegreeLng(origin.Lat),
		Alt: origin.Alt,
	}
}
