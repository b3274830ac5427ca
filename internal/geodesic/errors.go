package geodesic

import "errors"

// ErrDegenerate indicates a geodesic primitive was asked to operate on NaN
// coordinates, per spec.md §4.1.
var ErrDegenerate = errors.New("geodesic: degenerate input (NaN coordinate)")

// ErrOutsideHemisphere indicates the gnomonic forward projection returned
// NaN coordinates for a point too far from the projection's center.
var ErrOutsideHemisphere = errors.New("geodesic: point outside gnomonic hemisphere")
