package render

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
	LineNone                    // spaces (invisible border with padding)
)

// boxChars contains box drawing character sets indexed by LineType
var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
	LineNone:    {' ', ' ', ' ', ' ', ' ', ' '},
}

const (
	boxTL = 0
	boxH  = 1
	boxTR = 2
	boxV  = 3
	boxBL = 4
	boxBR = 5
)

// ParseLineType maps a config name to a LineType, unknown names map to LineSingle
func ParseLineType(name string) LineType {
	switch name {
	case "double":
		return LineDouble
	case "rounded":
		return LineRounded
	case "heavy":
		return LineHeavy
	case "none":
		return LineNone
	default:
		return LineSingle
	}
}

// Horizontal returns the horizontal rule rune of the line type
func (l LineType) Horizontal() rune {
	if l >= LineType(len(boxChars)) {
		l = LineSingle
	}
	return boxChars[l][boxH]
}

// Box draws a border inset by n cells from the viewport edge
func (v *Viewport) Box(inset int, line LineType, fg RGB) {
	w := v.w - 2*inset
	h := v.h - 2*inset
	if w < 2 || h < 2 {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineSingle
	}
	chars := boxChars[line]
	x0, y0 := inset, inset
	x1, y1 := inset+w-1, inset+h-1

	v.Set(x0, y0, chars[boxTL], fg)
	v.Set(x1, y0, chars[boxTR], fg)
	v.Set(x0, y1, chars[boxBL], fg)
	v.Set(x1, y1, chars[boxBR], fg)

	for x := x0 + 1; x < x1; x++ {
		v.Set(x, y0, chars[boxH], fg)
		v.Set(x, y1, chars[boxH], fg)
	}
	for y := y0 + 1; y < y1; y++ {
		v.Set(x0, y, chars[boxV], fg)
		v.Set(x1, y, chars[boxV], fg)
	}
}
