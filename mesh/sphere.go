// Package mesh tessellates the sphere the bacteria grow on.
package mesh

import (
	"fmt"
	"math"
)

// Sphere is a latitude/longitude tessellation. Vertices are packed xyz.
type Sphere struct {
	Vertices  []float32
	Lines     []uint16
	Triangles []uint16

	LatBands  int
	LongBands int
}

func (s *Sphere) VertexCount() int {
	return len(s.Vertices) / 3
}

// NewSphere builds a sphere of the given radius with latBands rings from pole
// to pole and longBands segments around. Each cell contributes a latitude and
// a longitude line, and two triangles.
func NewSphere(radius float32, latBands, longBands int) (*Sphere, error) {
	if latBands < 1 || longBands < 1 {
		return nil, fmt.Errorf("sphere needs at least one band, got %dx%d", latBands, longBands)
	}
	if (latBands+1)*(longBands+1) > math.MaxUint16+1 {
		return nil, fmt.Errorf("sphere with %dx%d bands overflows 16 bit indices", latBands, longBands)
	}

	s := &Sphere{
		Vertices:  make([]float32, 0, (latBands+1)*(longBands+1)*3),
		Lines:     make([]uint16, 0, latBands*longBands*4),
		Triangles: make([]uint16, 0, latBands*longBands*6),
		LatBands:  latBands,
		LongBands: longBands,
	}

	for lat := 0; lat <= latBands; lat++ {
		theta := float32(lat) * math.Pi / float32(latBands)

		for long := 0; long <= longBands; long++ {
			phi := float32(long) * 2 * math.Pi / float32(longBands)
			v := FromSpherical(radius, theta, phi)
			s.Vertices = append(s.Vertices, v[:]...)
		}
	}

	for lat := 0; lat < latBands; lat++ {
		for long := 0; long < longBands; long++ {
			first := uint16(lat*(longBands+1) + long)
			second := first + uint16(longBands+1)

			s.Lines = append(s.Lines,
				first, first+1,
				first, second,
			)
			s.Triangles = append(s.Triangles,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	return s, nil
}
