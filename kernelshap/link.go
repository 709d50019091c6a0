package kernelshap

import "math"

// Link is a scalar monotonic transform with a defined inverse, applied
// elementwise to model outputs. Attributions sum in link space:
// Σphi = F(f(x)) − F(E[f]).
type Link interface {
	// F applies the forward transform.
	F(y float64) float64

	// Finv applies the inverse transform: Finv(F(y)) == y.
	Finv(y float64) float64
}

// Identity is the default link: attributions sum in raw output units.
type Identity struct{}

// F returns y unchanged.
func (Identity) F(y float64) float64 { return y }

// Finv returns y unchanged.
func (Identity) Finv(y float64) float64 { return y }

// Logit maps probabilities to log-odds, so attributions of a
// probability-output model carry log-odds units.
type Logit struct{}

// F returns log(y / (1−y)).
func (Logit) F(y float64) float64 { return math.Log(y / (1 - y)) }

// Finv is the logistic function 1 / (1 + e^−y).
func (Logit) Finv(y float64) float64 { return 1 / (1 + math.Exp(-y)) }

// Compile-time conformance.
var (
	_ Link = Identity{}
	_ Link = Logit{}
)
