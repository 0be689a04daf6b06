package geometry3D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// DomainExtents sizes the background mesh as multiples of the characteristic
// length of the surface. The flow direction is +X.
type DomainExtents struct {
	Upstream   float64 // -X
	Downstream float64 // +X
	Lateral    float64 // +/-Y and +/-Z
}

func DefaultDomainExtents() DomainExtents {
	return DomainExtents{Upstream: 3, Downstream: 15, Lateral: 3}
}

// ComputeBounds returns the axis aligned box enclosing all points
func ComputeBounds(points []r3.Vec) (box r3.Box, err error) {
	if len(points) == 0 {
		err = fmt.Errorf("unable to compute bounds of an empty point set")
		return
	}
	var (
		Np         = len(points)
		xs, ys, zs = make([]float64, Np), make([]float64, Np), make([]float64, Np)
	)
	for i, p := range points {
		if !isFinite(p) {
			err = fmt.Errorf("point %d has a non-finite coordinate (%g %g %g)", i, p.X, p.Y, p.Z)
			return
		}
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	box.Min = r3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	box.Max = r3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	return
}

func isFinite(p r3.Vec) bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Extent returns the edge lengths of the box
func Extent(box r3.Box) r3.Vec {
	return r3.Sub(box.Max, box.Min)
}

// CharacteristicLength is the largest edge of the box
func CharacteristicLength(box r3.Box) float64 {
	e := Extent(box)
	return math.Max(e.X, math.Max(e.Y, e.Z))
}

// Domain grows the surface box into the blockMesh domain
func Domain(stl r3.Box, ext DomainExtents) r3.Box {
	D := CharacteristicLength(stl)
	return r3.Box{
		Min: r3.Vec{
			X: stl.Min.X - ext.Upstream*D,
			Y: stl.Min.Y - ext.Lateral*D,
			Z: stl.Min.Z - ext.Lateral*D,
		},
		Max: r3.Vec{
			X: stl.Max.X + ext.Downstream*D,
			Y: stl.Max.Y + ext.Lateral*D,
			Z: stl.Max.Z + ext.Lateral*D,
		},
	}
}

// LocationInMesh picks a point halfway between the surface maximum and the
// domain maximum on each axis. The point lies inside the fluid region as long
// as the domain encloses the surface.
func LocationInMesh(stl, domain r3.Box) r3.Vec {
	return r3.Add(stl.Max, r3.Scale(0.5, r3.Sub(domain.Max, stl.Max)))
}

// RefinementBox returns the snappyHexMesh refinement region around the surface.
// It extends to the outlet of the domain so the wake stays refined.
func RefinementBox(stl, domain r3.Box, margin float64) r3.Box {
	return r3.Box{
		Min: r3.Vec{X: stl.Min.X - margin, Y: stl.Min.Y - margin, Z: stl.Min.Z - margin},
		Max: r3.Vec{X: domain.Max.X, Y: stl.Max.Y + margin, Z: stl.Max.Z + margin},
	}
}

// Contains reports whether p lies inside or on the box
func Contains(box r3.Box, p r3.Vec) bool {
	return p.X >= box.Min.X && p.X <= box.Max.X &&
		p.Y >= box.Min.Y && p.Y <= box.Max.Y &&
		p.Z >= box.Min.Z && p.Z <= box.Max.Z
}
