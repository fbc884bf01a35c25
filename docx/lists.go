package docx

import "strconv"

// NumberingResolver resolves numbering definitions from numbering.xml so
// list paragraphs can be classified as ordered or unordered.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML
	numMappings  map[string]string // numId -> abstractNumId
}

// NewNumberingResolver creates a resolver from parsed numbering.xml. A nil
// numbering document yields a resolver that treats every list as unordered.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}
	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}
	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}
	return nr
}

// IsListParagraph reports whether the numbering reference marks a real list
// item. Word emits numId 0 to cancel inherited numbering.
func (nr *NumberingResolver) IsListParagraph(numID string) bool {
	return numID != "" && numID != "0"
}

// Ordered reports whether the numbering definition at the given level is a
// numbered format rather than a bullet. Unknown definitions default to
// unordered.
func (nr *NumberingResolver) Ordered(numID string, level int) bool {
	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return false
	}
	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return false
	}

	levelStr := strconv.Itoa(level)
	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl != levelStr {
			continue
		}
		switch lvl.NumFmt.Val {
		case "decimal", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman", "decimalZero":
			return true
		default:
			return false
		}
	}
	return false
}

// parseListLevel parses the 0-based ilvl value, defaulting to 0.
func parseListLevel(s string) int {
	if s == "" {
		return 0
	}
	level, err := strconv.Atoi(s)
	if err != nil || level < 0 {
		return 0
	}
	return level
}
