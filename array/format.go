// SPDX-License-Identifier: MIT

package array

import (
	"strconv"
	"strings"
)

// Format renders h as text: one line per row, columns right-aligned.
// Unassigned Text slots print as NA and Empty arrays as "<empty>".
func (rt *Runtime) Format(h Handle) (string, error) {
	a, err := rt.get(opFormat, h)
	if err != nil {
		return "", err
	}
	if a.data == nil {
		return "<empty>\n", nil
	}

	cells := make([]string, a.data.capacity())
	width := 0
	for i := range cells {
		cells[i] = cell(a.data, i)
		width = max(width, len(cells[i]))
	}

	var sb strings.Builder
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			s := cells[r*a.cols+c]
			sb.WriteString(strings.Repeat(" ", width-len(s)))
			sb.WriteString(s)
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

func cell(s storage, i int) string {
	switch d := s.(type) {
	case intStore:
		return strconv.Itoa(d[i])
	case realStore:
		return strconv.FormatFloat(d[i], 'g', 6, 64)
	case *textStore:
		if !d.set[i] {
			return "NA"
		}
		return strconv.Quote(d.vals[i])
	}

	return "?"
}
