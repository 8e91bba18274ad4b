package parser

// FindSection returns the first section with the given MF and MT, from its
// first record through its MT=0 terminator. The result is a view into lines.
//
// MT=0 locates the first terminator record of file MF as a one-line section.
func FindSection(lines []Line, mf, mt int) (Section, error) {
	return findSection(lines, 0, mf, mt)
}

// FindMaterialSection is FindSection restricted to material mat.
func FindMaterialSection(lines []Line, mat, mf, mt int) (Section, error) {
	return findSection(lines, mat, mf, mt)
}

func findSection(lines []Line, mat, mf, mt int) (Section, error) {
	start := -1
	for i, l := range lines {
		if l.MF == mf && l.MT == mt && (mat == 0 || l.MAT == mat) {
			start = i
			break
		}
	}
	if start < 0 {
		return Section{}, &SectionNotFoundError{MAT: mat, MF: mf, MT: mt}
	}

	key := lines[start].Key()
	if mt == 0 {
		return Section{Key: key, Start: start, End: start + 1, lines: lines}, nil
	}
	for j := start + 1; j < len(lines); j++ {
		l := lines[j]
		if l.IsSectionEnd() {
			return Section{Key: key, Start: start, End: j + 1, lines: lines}, nil
		}
		if l.MAT != key.MAT || l.MF != mf || l.MT != mt {
			return Section{}, &UnterminatedSectionError{MAT: key.MAT, MF: mf, MT: mt, Start: start, Stop: j}
		}
	}
	return Section{}, &UnterminatedSectionError{MAT: key.MAT, MF: mf, MT: mt, Start: start, Stop: -1}
}

// FindFile returns every record of file MF of the first material carrying it,
// ending with the file-end record (MF=0, MT=0). The returned Section has MT=0.
func FindFile(lines []Line, mf int) (Section, error) {
	start := -1
	for i, l := range lines {
		if l.MF == mf {
			start = i
			break
		}
	}
	if start < 0 {
		return Section{}, &SectionNotFoundError{MF: mf, MT: -1}
	}

	key := SectionKey{MAT: lines[start].MAT, MF: mf}
	if mf == 0 {
		return Section{Key: key, Start: start, End: start + 1, lines: lines}, nil
	}
	for j := start + 1; j < len(lines); j++ {
		l := lines[j]
		if l.MF == 0 {
			return Section{Key: key, Start: start, End: j + 1, lines: lines}, nil
		}
		if l.MAT != key.MAT || l.MF != mf {
			return Section{}, &UnterminatedSectionError{MAT: key.MAT, MF: mf, MT: -1, Start: start, Stop: j}
		}
	}
	return Section{}, &UnterminatedSectionError{MAT: key.MAT, MF: mf, MT: -1, Start: start, Stop: -1}
}

// ListContent returns the distinct (MAT, MF, MT) keys in document order.
// Delimiter records (any of MAT, MF, MT zero) and the tape end (MAT=-1) are
// left out.
func ListContent(lines []Line) []ContentEntry {
	index := make(map[SectionKey]int)
	var entries []ContentEntry
	for i, l := range lines {
		if l.MAT <= 0 || l.MF == 0 || l.MT == 0 {
			continue
		}
		k := l.Key()
		if at, ok := index[k]; ok {
			entries[at].NumLines++
			continue
		}
		index[k] = len(entries)
		entries = append(entries, ContentEntry{SectionKey: k, Start: i, NumLines: 1})
	}
	return entries
}
