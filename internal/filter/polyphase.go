package filter

// polyphaseFactor is the number of branches of a two-channel bank.
const polyphaseFactor = 2

// Phases is the two-branch polyphase decomposition of a filter.
//
// Even holds taps 0, 2, 4, ... and Odd holds taps 1, 3, 5, ..., both in
// REVERSED order so that a branch output is a plain dot product with a
// forward-running window of the input:
//
//	Σ_j x[p-j]·f[2j] == Σ_k x[p-len(Even)+1+k]·Even[k]
//
// For a filter of odd length Even carries the extra trailing tap, so
// len(Even) == HalfCeil() and len(Odd) == Half(). Odd is empty for a
// single-tap filter.
type Phases struct {
	Even []float64
	Odd  []float64
}

// Decompose splits f into its reversed even and odd branches.
func Decompose(f Filter) Phases {
	even := make([]float64, f.HalfCeil())
	odd := make([]float64, f.Half())

	for i, c := range f.coeffs {
		tap := i / polyphaseFactor
		if i%polyphaseFactor == 0 {
			even[len(even)-1-tap] = c
		} else {
			odd[len(odd)-1-tap] = c
		}
	}

	return Phases{Even: even, Odd: odd}
}

// Recompose rebuilds the forward-order coefficients from a decomposition.
func (p Phases) Recompose() []float64 {
	n := len(p.Even) + len(p.Odd)
	coeffs := make([]float64, n)
	for k, c := range p.Even {
		coeffs[(len(p.Even)-1-k)*polyphaseFactor] = c
	}
	for k, c := range p.Odd {
		coeffs[(len(p.Odd)-1-k)*polyphaseFactor+1] = c
	}
	return coeffs
}
