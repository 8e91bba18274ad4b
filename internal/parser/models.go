package parser

import "fmt"

// SectionKey identifies a section: material, file and section number.
type SectionKey struct {
	MAT int
	MF  int
	MT  int
}

func (k SectionKey) String() string {
	return fmt.Sprintf("MAT=%d MF=%d MT=%d", k.MAT, k.MF, k.MT)
}

// Document is an ENDF-6 tape as an ordered sequence of records.
type Document struct {
	Lines []Line
}

// Section is a view over the lines of one (MF, MT) section, terminator
// included. It shares the backing array of the slice it was found in.
type Section struct {
	Key   SectionKey
	Start int // index of the first line in the searched slice
	End   int // one past the terminator
	lines []Line
}

// Lines returns the section's records, terminator last.
func (s Section) Lines() []Line { return s.lines[s.Start:s.End] }

// Len is the number of records in the section, terminator included.
func (s Section) Len() int { return s.End - s.Start }

// ContentEntry is one row of a document's table of contents.
type ContentEntry struct {
	SectionKey
	Start    int // index of the first line of the section
	NumLines int // records carrying this key, terminator excluded
}

// Cont is a CONT record: two floats and four integers. HEAD records share the
// layout with C1=ZA and C2=AWR.
type Cont struct {
	C1, C2         float64
	L1, L2, N1, N2 int
}

// InterpolationRegion is one NBT/INT pair of a TAB1 record: points up to and
// including Boundary (1-based) follow interpolation law Law.
type InterpolationRegion struct {
	Boundary int
	Law      int
}

// TabulatedFunction is a decoded TAB1 record.
type TabulatedFunction struct {
	Head    Cont // section HEAD record, zero when read without one
	Header  Cont // TAB1 control record; N1=NR, N2=NP
	Regions []InterpolationRegion
	X       []float64
	Y       []float64
}

// NumPoints is the number of (x, y) pairs.
func (t *TabulatedFunction) NumPoints() int { return len(t.X) }

// FileDescriptions names the ENDF-6 file numbers. Used for labelling only.
var FileDescriptions = map[int]string{
	1:  "descriptive and miscellaneous data",
	2:  "resonance parameter data",
	3:  "reaction cross sections",
	4:  "angular distributions",
	5:  "energy distributions",
	6:  "energy-angle distributions",
	7:  "thermal scattering data",
	8:  "radioactivity data",
	9:  "multiplicities for radioactive nuclide production",
	10: "cross sections for radioactive nuclide production",
	12: "photon production multiplicities",
	13: "photon production cross sections",
	14: "photon angular distributions",
	15: "continuous photon energy spectra",
	23: "photo-atomic interaction cross sections",
	27: "atomic form factors",
	30: "covariances of model parameters",
	31: "covariances of fission multiplicities",
	32: "covariances of resonance parameters",
	33: "covariances of neutron cross sections",
	34: "covariances for angular distributions",
	35: "covariances for energy distributions",
	40: "covariances for radioactive nuclide production",
}

// SectionDescriptions names common MT numbers. Used for labelling only.
var SectionDescriptions = map[int]string{
	1:   "total",
	2:   "elastic scattering",
	3:   "nonelastic",
	4:   "inelastic",
	16:  "(n,2n)",
	17:  "(n,3n)",
	18:  "fission",
	102: "radiative capture",
	103: "(n,p)",
	107: "(n,alpha)",
	451: "descriptive data and directory",
}
