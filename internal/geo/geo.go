// Copyright 2026 The GPS Message Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package geo provides great-circle distance calculation and circular
// geofence evaluation.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371 * 1000

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceMeters computes the great-circle distance between two points
// using the haversine formula.
func DistanceMeters(a, b Point) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLon := deg2rad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Fence is a circular geofence around a target point. The same fence
// applies to every tenant; it is process-wide configuration.
type Fence struct {
	Target       Point
	RadiusMeters float64
}

// Evaluate returns the distance from p to the target and whether p lies
// within the fence. The boundary is inclusive. A NaN distance (non-finite
// input) reports outside.
func (f Fence) Evaluate(p Point) (float64, bool) {
	d := DistanceMeters(p, f.Target)
	return d, d <= f.RadiusMeters
}

// Contains reports whether p lies within the fence.
func (f Fence) Contains(p Point) bool {
	_, inside := f.Evaluate(p)
	return inside
}
