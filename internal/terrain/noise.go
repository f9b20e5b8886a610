package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// LayeredNoise sums several octaves of simplex noise at increasing
// frequency and decreasing amplitude. Each layer has its own generator
// seeded by layer index, so the field is reproducible from the layer
// count alone. Stateless after construction; safe for concurrent reads.
type LayeredNoise struct {
	layers      []opensimplex.Noise
	lacunarity  float64
	persistence float64
}

// NewLayeredNoise creates a noise field with the given number of layers,
// lacunarity 2.0 and persistence 0.5.
func NewLayeredNoise(layerCount int) *LayeredNoise {
	layers := make([]opensimplex.Noise, layerCount)
	for i := range layers {
		layers[i] = opensimplex.New(int64(i))
	}
	return &LayeredNoise{
		layers:      layers,
		lacunarity:  2.0,
		persistence: 0.5,
	}
}

// Height evaluates the field at (x, z). Output is unbounded but in
// practice limited by the geometric sum of layer amplitudes; callers
// apply their own height scale.
func (n *LayeredNoise) Height(x, z float64) float64 {
	frequency := 1.0
	amplitude := 1.0
	acc := 0.0
	for _, layer := range n.layers {
		acc += layer.Eval2(x*frequency, z*frequency) * amplitude
		frequency *= n.lacunarity
		amplitude *= n.persistence
	}
	return acc
}
