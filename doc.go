/*
Package qcmp checks that a quantum-chemistry program's plain-text
output stays numerically consistent across program versions. It is a
regression oracle, not a diff tool: it assumes the reference file and
the candidate file come from structurally similar runs and aborts on
the first structural divergence instead of trying to resynchronize.

Each file is reduced to an ordered stream of typed elements by a
Scanner. The Scanner tracks which section of the report it is in and
discards content that is not reproducible or not meaningful, i.e.
timing and version banners, convergence iteration logs, the molecular
dimensions block, geometry tables, localized orbital tables, gradient
tables and vibration descriptions. What remains becomes text elements,
number elements, the specially tagged final heat of formation and
reconstructed eigenvector blocks:

	sc, err := qcmp.ScanFile("benzene.out")
	if err != nil { ... }
	defer sc.Close()
	for {
		el, err := sc.Next()
		...
	}

Eigenvector blocks start with a "Root No." header row. Wide blocks are
printed in several column groups, each with its own header; the Scanner
reassembles them into one matrix, rescales every column to unit norm
and keeps track of whether the block covers the first and the last
basis index.

A Compare walks two such streams in lockstep. Text must match exactly,
numbers only within a tolerance, and the heat of formation within a
tighter one. Eigenvectors are only stable up to rotation within
degenerate subspaces, so they are never compared element-wise. Instead
the reference eigenvalues delimit the degenerate subspaces and for each
fully bounded subspace the singular values of the overlap matrix
between reference and candidate columns must all be close to 1:

	cmpr := qcmp.Compare{}
	warnings, err := cmpr.Files("ref/benzene.out", "benzene.out")

Numeric drift beyond a threshold is reported as a warning and the
comparison continues. Type mismatches, text mismatches and subspace
mismatches are fatal and end the comparison with an error.

The tolerances and extra skip patterns can be loaded from a YAML
profile, see Profile. Package qcmping supports comparing against
reference outputs kept in a Go package's testdata directory.
*/
package qcmp
