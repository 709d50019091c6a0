package kernelshap

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/shapkit/dataset"
)

// errSessionFull guards the append-only addSample contract; reaching it is
// a programmer error inside the pipeline, not a user condition.
var errSessionFull = errors.New("kernelshap: session capacity exceeded")

// session owns every piece of per-call sampling state: the synthetic
// buffer, recorded masks and weights, raw outputs and per-mask
// expectations. A fresh session is created inside each Explain call and
// never shared, which is what makes concurrent explanations against one
// Explainer safe.
type session struct {
	bg      *dataset.Background
	varying []int // varying group indices, ascending; column meaning of masks
	d       int   // output dimensions

	nsamples int            // allocated coalition capacity
	synth    dataset.Matrix // background tiled nsamples times, (nsamples·N)×P
	masks    *mat.Dense     // nsamples×M, rows recorded by addSample
	weights  []float64      // kernel weight per recorded row
	y        *mat.Dense     // raw model outputs, (nsamples·N)×D
	ey       *mat.Dense     // background-weighted expectation per mask, nsamples×D

	nsamplesAdded int
	nsamplesRun   int
}

// newSession tiles the background nsamples times (dense or sparse,
// matching the background representation) and zero-initializes every
// buffer of the pipeline.
func newSession(bg *dataset.Background, varying []int, d, nsamples int) *session {
	n := bg.Rows()

	return &session{
		bg:       bg,
		varying:  varying,
		d:        d,
		nsamples: nsamples,
		synth:    bg.Data().Tile(nsamples),
		masks:    mat.NewDense(nsamples, len(varying), nil),
		weights:  make([]float64, nsamples),
		y:        mat.NewDense(nsamples*n, d, nil),
		ey:       mat.NewDense(nsamples, d, nil),
	}
}

// addSample pins every group flagged "known" by the mask to the instance's
// values across the N background rows of the current coalition slot, then
// records the mask row and its weight and advances the cursor.
// Append-only; never exceeds the allocated capacity.
func (s *session) addSample(x dataset.Matrix, mask []float64, w float64) error {
	if s.nsamplesAdded >= s.nsamples {
		return errSessionFull
	}
	n := s.bg.Rows()
	offset := s.nsamplesAdded * n

	for j, gi := range s.varying {
		if mask[j] != 1 {
			continue
		}
		for _, col := range s.bg.Groups()[gi] {
			v, err := x.At(0, col)
			if err != nil {
				return err
			}
			if err = s.synth.SetColumnBlock(offset, n, col, v); err != nil {
				return err
			}
		}
	}

	s.masks.SetRow(s.nsamplesAdded, mask)
	s.weights[s.nsamplesAdded] = w
	s.nsamplesAdded++

	return nil
}

// run invokes the model exactly once on every synthetic row added since
// the previous invocation (batching keeps cost linear in the sample
// count), then reduces each new coalition block to its
// background-weighted expected output.
func (s *session) run(m Model) error {
	if s.nsamplesRun == s.nsamplesAdded {
		return nil
	}
	n := s.bg.Rows()

	out, err := m.Predict(s.synth)
	if err != nil {
		return err
	}
	rows, cols := out.Dims()
	if rows != s.nsamplesAdded*n || cols != s.d {
		return fmt.Errorf("run: got %d×%d for %d rows, D=%d: %w", rows, cols, s.nsamplesAdded*n, s.d, ErrModelShape)
	}

	wbg := s.bg.Weights()
	for i := s.nsamplesRun; i < s.nsamplesAdded; i++ {
		for dd := 0; dd < s.d; dd++ {
			ev := 0.0
			for j := 0; j < n; j++ {
				s.y.Set(i*n+j, dd, out.At(i*n+j, dd))
				ev += out.At(i*n+j, dd) * wbg[j]
			}
			s.ey.Set(i, dd, ev)
		}
		s.nsamplesRun++
	}

	return nil
}
