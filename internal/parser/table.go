package parser

// linesFor is the number of records needed to hold n packed fields.
func linesFor(n int) int {
	return (n + FieldsPerLine - 1) / FieldsPerLine
}

// cursor walks records [pos, limit) of a line slice. Indices are positions in
// the full slice so errors point at the right record.
type cursor struct {
	lines []Line
	pos   int
	limit int
}

// reserve checks that n packed fields fit before limit and returns the number
// of records they occupy.
func (c *cursor) reserve(n, declared int, what string) (int, error) {
	need := linesFor(n)
	if have := c.limit - c.pos; need > have {
		return 0, &TruncatedTableError{What: what, Declared: declared, NeedLines: need, HaveLines: have}
	}
	return need, nil
}

// floats decodes n fields packed six per record, spilling over as many
// records as needed. A partially used last record has its tail ignored.
func (c *cursor) floats(n, declared int, what string) ([]float64, error) {
	need, err := c.reserve(n, declared, what)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		line, field := c.pos+k/FieldsPerLine, k%FieldsPerLine
		v, err := c.lines[line].Float(field)
		if err != nil {
			return nil, locate(err, line, field)
		}
		out[k] = v
	}
	c.pos += need
	return out, nil
}

// ints is floats for integer fields.
func (c *cursor) ints(n, declared int, what string) ([]int, error) {
	need, err := c.reserve(n, declared, what)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for k := 0; k < n; k++ {
		line, field := c.pos+k/FieldsPerLine, k%FieldsPerLine
		v, err := c.lines[line].Int(field)
		if err != nil {
			return nil, locate(err, line, field)
		}
		out[k] = v
	}
	c.pos += need
	return out, nil
}

// ReadCont decodes a CONT (or HEAD) record.
func ReadCont(l Line) (Cont, error) {
	var c Cont
	var err error
	if c.C1, err = l.Float(0); err != nil {
		return Cont{}, err
	}
	if c.C2, err = l.Float(1); err != nil {
		return Cont{}, err
	}
	ints := [4]*int{&c.L1, &c.L2, &c.N1, &c.N2}
	for i, dst := range ints {
		if *dst, err = l.Int(i + 2); err != nil {
			return Cont{}, err
		}
	}
	return c, nil
}

// ReadTable decodes a section laid out as HEAD, TAB1, terminator. This is
// the layout of MF=3 cross sections and other single-table sections.
func ReadTable(sec Section) (*TabulatedFunction, error) {
	if sec.Len() < 2 {
		return nil, &TruncatedTableError{What: "HEAD and TAB1 records", Declared: 2, NeedLines: 2, HaveLines: sec.Len()}
	}
	head, err := ReadCont(sec.lines[sec.Start])
	if err != nil {
		return nil, locate(err, sec.Start, -1)
	}

	limit := sec.End
	if sec.lines[limit-1].IsSectionEnd() {
		limit--
	}
	t, _, err := readTAB1(&cursor{lines: sec.lines, pos: sec.Start + 1, limit: limit})
	if err != nil {
		return nil, err
	}
	t.Head = head
	return t, nil
}

// ReadTAB1 decodes a TAB1 record whose control record is lines[start]. The
// record may not extend past the next terminator. It returns the index of
// the first record after the table.
func ReadTAB1(lines []Line, start int) (*TabulatedFunction, int, error) {
	limit := len(lines)
	for i := start; i < len(lines); i++ {
		if lines[i].IsSectionEnd() {
			limit = i
			break
		}
	}
	return readTAB1(&cursor{lines: lines, pos: start, limit: limit})
}

func readTAB1(c *cursor) (*TabulatedFunction, int, error) {
	if c.pos < 0 || c.pos >= c.limit {
		return nil, 0, &TruncatedTableError{What: "TAB1 control record", Declared: 1, NeedLines: 1, HaveLines: 0}
	}
	at := c.pos
	header, err := ReadCont(c.lines[at])
	if err != nil {
		return nil, 0, locate(err, at, -1)
	}
	nr, np := header.N1, header.N2
	if nr < 0 {
		return nil, 0, &FormatError{Line: at, Field: 4, Text: c.lines[at].Data[4], Msg: "negative interpolation region count"}
	}
	if np < 0 {
		return nil, 0, &FormatError{Line: at, Field: 5, Text: c.lines[at].Data[5], Msg: "negative point count"}
	}
	c.pos++

	nbt, err := c.ints(2*nr, nr, "interpolation regions")
	if err != nil {
		return nil, 0, err
	}
	xy, err := c.floats(2*np, np, "data points")
	if err != nil {
		return nil, 0, err
	}

	t := &TabulatedFunction{
		Header:  header,
		Regions: make([]InterpolationRegion, nr),
		X:       make([]float64, np),
		Y:       make([]float64, np),
	}
	for i := 0; i < nr; i++ {
		t.Regions[i] = InterpolationRegion{Boundary: nbt[2*i], Law: nbt[2*i+1]}
	}
	for i := 0; i < np; i++ {
		t.X[i] = xy[2*i]
		t.Y[i] = xy[2*i+1]
	}
	return t, c.pos, nil
}
