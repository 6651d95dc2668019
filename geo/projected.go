// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geo

import "github.com/wroge/wgs84"

// Some hosts report positions in EPSG:3857 projected meters rather than
// geographic degrees. These helpers convert between the two datums so such
// positions can be normalized into Coordinate before entering the local
// frame. They use the full ellipsoidal transform, unlike the spherical
// projection in Mercator, because host-reported projected coordinates are
// ellipsoidal.

// FromMercator3857 converts EPSG:3857 projected meters to a geographic
// Coordinate (EPSG:4326). The altitude passes through unchanged.
func FromMercator3857(x, y, alt float64) Coordinate {
	f := wgs84.EPSG().Transform(3857, 4326)
	lng, lat, _ := f(x, y, 0)
	return Coordinate{Lat: lat, Lng: lng, Alt: alt}
}

// ToMercator3857 converts a geographic Coordinate to EPSG:3857 projected
// meters. The altitude passes through unchanged.
func ToMercator3857(c Coordinate) (x, y, alt float64) {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ = f(c.Lng, c.Lat, 0)
	return x, y, c.Alt
}
