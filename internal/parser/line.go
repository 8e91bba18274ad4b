package parser

import (
	"strings"
)

// Column layout of an ENDF-6 record, 0-based half-open byte ranges.
const (
	FieldsPerLine = 6
	dataEnd       = FieldsPerLine * FieldWidth // 66
	matStart      = dataEnd
	mfStart       = 70
	mtStart       = 72
	nsStart       = 75
	lineEnd       = 80

	// MinLineWidth is the shortest accepted record: data plus MAT, MF and MT.
	// The sequence number in columns 76-80 may be missing.
	MinLineWidth = nsStart
)

// Line is one decoded ENDF-6 record. The six data fields are kept as raw text
// and decoded on demand, since their meaning (float, integer or descriptive
// text) depends on the record type.
type Line struct {
	Text string                // the record without line terminator
	Data [FieldsPerLine]string // columns 1-66 in 11-character fields
	MAT  int
	MF   int
	MT   int
	NS   int // sequence number, 0 when absent
}

// ParseLine slices a raw record at the fixed column boundaries. A trailing
// "\n" or "\r\n" is tolerated. Fails when the control fields are missing or
// not integers.
func ParseLine(raw string) (Line, error) {
	text := strings.TrimRight(raw, "\r\n")
	if len(text) < MinLineWidth {
		return Line{}, &FormatError{Line: -1, Field: -1, Text: text,
			Msg: "record shorter than 75 columns"}
	}

	l := Line{Text: text}
	for i := 0; i < FieldsPerLine; i++ {
		l.Data[i] = text[i*FieldWidth : (i+1)*FieldWidth]
	}

	var err error
	if l.MAT, err = controlInt(text[matStart:mfStart], "MAT"); err != nil {
		return Line{}, err
	}
	if l.MF, err = controlInt(text[mfStart:mtStart], "MF"); err != nil {
		return Line{}, err
	}
	if l.MT, err = controlInt(text[mtStart:nsStart], "MT"); err != nil {
		return Line{}, err
	}
	ns := text[nsStart:]
	if len(ns) > lineEnd-nsStart {
		ns = ns[:lineEnd-nsStart]
	}
	if l.NS, err = controlInt(ns, "NS"); err != nil {
		return Line{}, err
	}
	return l, nil
}

func controlInt(s, name string) (int, error) {
	n, err := ParseInt(s)
	if err != nil {
		return 0, &FormatError{Line: -1, Field: -1, Text: s, Msg: "invalid " + name + " control field", Err: err}
	}
	return n, nil
}

// Key returns the (MAT, MF, MT) triple of the record.
func (l Line) Key() SectionKey {
	return SectionKey{MAT: l.MAT, MF: l.MF, MT: l.MT}
}

// IsSectionEnd reports whether the record is a terminator (MT=0).
func (l Line) IsSectionEnd() bool { return l.MT == 0 }

// Float decodes data field i (0-5) as a float.
func (l Line) Float(i int) (float64, error) {
	v, err := ParseFloat(l.Data[i])
	if err != nil {
		return 0, locate(err, -1, i)
	}
	return v, nil
}

// Int decodes data field i (0-5) as an integer.
func (l Line) Int(i int) (int, error) {
	n, err := ParseInt(l.Data[i])
	if err != nil {
		return 0, locate(err, -1, i)
	}
	return n, nil
}

// Floats decodes all six data fields.
func (l Line) Floats() ([FieldsPerLine]float64, error) {
	var out [FieldsPerLine]float64
	for i := range l.Data {
		v, err := l.Float(i)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// locate stamps a line and field index on a FormatError. Negative values keep
// what is already there.
func locate(err error, line, field int) error {
	fe, ok := err.(*FormatError)
	if !ok {
		return err
	}
	c := *fe
	if line >= 0 {
		c.Line = line
	}
	if field >= 0 {
		c.Field = field
	}
	return &c
}
