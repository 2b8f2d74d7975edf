package geometry

import "fmt"

// Generator produces powers of a fixed affine. Squares are cached and
// larger powers are assembled from them, so each call costs at most
// O(log n) compositions and repeated calls are map lookups.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	squares []Affine // squares[k] = base^(2^k)
	powers  map[int]Affine
}

// NewGenerator creates a Generator for base.
func NewGenerator(base Transform) *Generator {
	return &Generator{
		squares: []Affine{base.AsAffine()},
		powers:  map[int]Affine{0: Identity()},
	}
}

// Power returns base^n. A negative n returns ErrNegativePower.
func (g *Generator) Power(n int) (Affine, error) {
	if n < 0 {
		return Affine{}, fmt.Errorf("%w: %d", ErrNegativePower, n)
	}
	if a, ok := g.powers[n]; ok {
		return a, nil
	}
	acc := Identity()
	for k, rest := 0, n; rest > 0; k, rest = k+1, rest>>1 {
		for len(g.squares) <= k {
			last := g.squares[len(g.squares)-1]
			g.squares = append(g.squares, last.Then(last))
		}
		if rest&1 == 1 {
			acc = acc.Then(g.squares[k])
		}
	}
	g.powers[n] = acc
	return acc, nil
}
