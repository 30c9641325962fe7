// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package doctable

import (
	"strings"

	"grimm.is/vardoc/internal/errors"
)

// Span is the byte range of a region inside a document. Start is the end of
// the opening marker's text; End is the first byte of the closing marker line.
type Span struct {
	Start int
	End   int
	// Line is the 1-based line number of the opening marker.
	Line int
}

// Locate finds the region bounded by marker. A marker line is a line whose
// content, ignoring surrounding whitespace, equals marker.
func Locate(doc, marker string) (Span, error) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return Span{}, errors.New(errors.KindValidation, "marker must not be blank")
	}

	type hit struct {
		lineStart, lineEnd, line int
	}
	var hits []hit

	line := 1
	for pos := 0; pos <= len(doc); line++ {
		end := strings.IndexByte(doc[pos:], '\n')
		if end < 0 {
			end = len(doc)
		} else {
			end += pos
		}
		if strings.TrimSpace(doc[pos:end]) == marker {
			hits = append(hits, hit{lineStart: pos, lineEnd: end, line: line})
		}
		pos = end + 1
	}

	switch {
	case len(hits) < 2:
		err := errors.Errorf(errors.KindRegionNotFound, "marker found %d time(s), want 2", len(hits))
		return Span{}, errors.Attr(err, "marker", marker)
	case len(hits) > 2:
		err := errors.Errorf(errors.KindMalformedRegion, "marker found %d times, want 2", len(hits))
		err = errors.Attr(err, "marker", marker)
		return Span{}, errors.Attr(err, "line", hits[2].line)
	}

	return Span{
		Start: hits[0].lineEnd,
		End:   hits[1].lineStart,
		Line:  hits[0].line,
	}, nil
}
