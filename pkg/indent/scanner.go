package indent

// characterOf maps an indentation byte to its Character.
func characterOf(b byte) Character {
	switch b {
	case ' ':
		return Space
	case '\t':
		return Tab
	default:
		return None
	}
}

// ScanLine classifies the leading indentation of line.
//
// Only the run of the first character is counted: a tab followed by spaces
// yields (Tab, 1). Mixed indentation is detected across lines, never within
// one.
func ScanLine(line string) LineClassification {
	if line == "" {
		return LineClassification{Char: None}
	}

	first := line[0]

	char := characterOf(first)
	if char == None {
		return LineClassification{Char: None}
	}

	count := 0
	for count < len(line) && line[count] == first {
		count++
	}

	return LineClassification{Char: char, Count: count}
}
