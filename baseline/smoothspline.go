package baseline

import (
	"math"
	"sort"
)

// smoothingSpline is a natural cubic smoothing spline in Reinsch's
// penalized-least-squares form: among natural cubics it minimizes the
// integrated squared second derivative for a given residual budget. The
// penalty weight is chosen so that the residual sum of squares lands on the
// requested budget (or as close to it as the model allows).
type smoothingSpline struct {
	x []float64 // knots, strictly increasing
	g []float64 // fitted values at the knots
	m []float64 // second derivatives at the knots, zero at both ends
}

// fitSmoothingSpline fits a smoothing spline to (x, y) with residual budget
// s > 0. The penalty weight is located by doubling until the residual sum of
// squares reaches s, then bisected. When even the maximally smoothed curve
// (the least-squares line) has residuals below s, that curve is returned.
func fitSmoothingSpline(x, y []float64, s float64) (*smoothingSpline, error) {
	n := len(x)
	if n < 3 {
		return nil, ErrTooFewPoints
	}

	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	// Bracket the penalty weight.
	lo := 0.0
	hi := 1.0

	var g, gamma []float64
	var rss float64

	bracketed := false
	for iter := 0; iter < 100; iter++ {
		g, gamma, rss = solvePenalized(x, y, h, hi)
		if rss >= s {
			bracketed = true
			break
		}

		lo = hi
		hi *= 8
	}

	if bracketed {
		for iter := 0; iter < 80; iter++ {
			mid := (lo + hi) / 2

			g, gamma, rss = solvePenalized(x, y, h, mid)
			if rss > s {
				hi = mid
			} else {
				lo = mid
			}

			if math.Abs(rss-s) <= 1e-6*s {
				break
			}
		}
	}

	m := make([]float64, n)
	copy(m[1:n-1], gamma)

	return &smoothingSpline{x: x, g: g, m: m}, nil
}

// solvePenalized solves the natural smoothing spline for a fixed penalty
// weight alpha: (R + alpha QᵀQ) gamma = Qᵀy, g = y − alpha·Q·gamma, where R
// and Q are the standard value/second-derivative band matrices over the
// knots. The system is symmetric pentadiagonal and solved by banded LDLᵀ.
func solvePenalized(x, y, h []float64, alpha float64) (g, gamma []float64, rss float64) {
	n := len(x)
	m := n - 2

	// Column j of Q touches data rows j, j+1, j+2.
	q0 := make([]float64, m)
	q1 := make([]float64, m)
	q2 := make([]float64, m)

	for j := 0; j < m; j++ {
		q0[j] = 1 / h[j]
		q2[j] = 1 / h[j+1]
		q1[j] = -q0[j] - q2[j]
	}

	// Diagonals of R + alpha QᵀQ and the right-hand side Qᵀy.
	d0 := make([]float64, m)
	d1 := make([]float64, m)
	d2 := make([]float64, m)
	b := make([]float64, m)

	for j := 0; j < m; j++ {
		d0[j] = (h[j]+h[j+1])/3 + alpha*(q0[j]*q0[j]+q1[j]*q1[j]+q2[j]*q2[j])
		b[j] = (y[j+2]-y[j+1])/h[j+1] - (y[j+1]-y[j])/h[j]

		if j+1 < m {
			d1[j] = h[j+1]/6 + alpha*(q1[j]*q0[j+1]+q2[j]*q1[j+1])
		}

		if j+2 < m {
			d2[j] = alpha * q2[j] * q0[j+2]
		}
	}

	gamma = solvePentadiagonal(d0, d1, d2, b)

	// Residuals r = alpha·Q·gamma, fitted values g = y − r.
	g = make([]float64, n)

	for i := 0; i < n; i++ {
		r := 0.0

		if j := i; j < m {
			r += q0[j] * gamma[j]
		}

		if j := i - 1; j >= 0 && j < m {
			r += q1[j] * gamma[j]
		}

		if j := i - 2; j >= 0 && j < m {
			r += q2[j] * gamma[j]
		}

		r *= alpha
		g[i] = y[i] - r
		rss += r * r
	}

	return g, gamma, rss
}

// solvePentadiagonal solves M v = b by LDLᵀ factorization, where M is
// symmetric positive definite with main diagonal d0, first off-diagonal d1,
// and second off-diagonal d2.
func solvePentadiagonal(d0, d1, d2, b []float64) []float64 {
	m := len(d0)

	diag := make([]float64, m)
	l1 := make([]float64, m)
	l2 := make([]float64, m)
	v := make([]float64, m)

	for j := 0; j < m; j++ {
		dj := d0[j]
		if j >= 1 {
			dj -= l1[j-1] * l1[j-1] * diag[j-1]
		}
		if j >= 2 {
			dj -= l2[j-2] * l2[j-2] * diag[j-2]
		}
		diag[j] = dj

		if j+1 < m {
			t := d1[j]
			if j >= 1 {
				t -= l1[j-1] * l2[j-1] * diag[j-1]
			}
			l1[j] = t / dj
		}

		if j+2 < m {
			l2[j] = d2[j] / dj
		}
	}

	// Forward: L z = b.
	for j := 0; j < m; j++ {
		z := b[j]
		if j >= 1 {
			z -= l1[j-1] * v[j-1]
		}
		if j >= 2 {
			z -= l2[j-2] * v[j-2]
		}
		v[j] = z
	}

	// Diagonal and backward: Lᵀ v = D⁻¹ z.
	for j := 0; j < m; j++ {
		v[j] /= diag[j]
	}

	for j := m - 1; j >= 0; j-- {
		if j+1 < m {
			v[j] -= l1[j] * v[j+1]
		}
		if j+2 < m {
			v[j] -= l2[j] * v[j+2]
		}
	}

	return v
}

// predict evaluates the spline at t, clamping t to the knot range.
func (s *smoothingSpline) predict(t float64) float64 {
	n := len(s.x)

	if t <= s.x[0] {
		return s.g[0]
	}

	if t >= s.x[n-1] {
		return s.g[n-1]
	}

	// Segment i such that x[i] <= t < x[i+1].
	i := sort.SearchFloat64s(s.x, t)
	if s.x[i] > t {
		i--
	}

	h := s.x[i+1] - s.x[i]
	a := s.x[i+1] - t
	c := t - s.x[i]

	value := (a*s.g[i] + c*s.g[i+1]) / h
	value -= a * c / 6 * ((1+a/h)*s.m[i] + (1+c/h)*s.m[i+1])

	return value
}
