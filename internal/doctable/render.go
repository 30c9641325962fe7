// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package doctable

import (
	"strings"

	"grimm.is/vardoc/internal/varset"
)

// NoDefault is rendered for variables without a default.
const NoDefault = "*None*"

// EmptyDefault is rendered for variables whose default is the empty string.
const EmptyDefault = "`\"\"`"

// RenderDefault renders the default-value cell for d.
func RenderDefault(d varset.Default) string {
	switch {
	case d.IsAbsent():
		return NoDefault
	case d.IsEmpty():
		return EmptyDefault
	}
	v := strings.ReplaceAll(d.Value, "|", `\|`)
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return "```" + v + "```"
}

// Render produces the region text for set: a leading newline, the header,
// one row per variable in declaration order and a trailing newline.
func Render(set *varset.DeclaredSet, ix Index, shape Shape) (string, error) {
	if err := shape.valid(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("\n")
	writeHeader(&sb, shape.header())

	for _, e := range set.Entries() {
		cells := []string{"`" + e.Name + "`"}
		if shape == ThreeColumn {
			cells = append(cells, RenderDefault(e.Default))
		}
		cells = append(cells, ix.Description(e.Name))
		writeRow(&sb, cells)
	}
	return sb.String(), nil
}

func writeHeader(sb *strings.Builder, titles []string) {
	writeRow(sb, titles)
	sep := make([]string, len(titles))
	for i := range sep {
		sep[i] = "-"
	}
	writeRow(sb, sep)
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}
