// Package citation resolves inline citation markers in AI-generated
// prose into links targeting highlighted passages of source documents.
//
// Markers look like "(Nguồn [2])" (or the undiacritized "(Nguon [2])"),
// case-insensitive, where the number references a CitationSource by its
// 1-based citationId. Resolution is pure text processing: no network,
// no mutation of the source list, and it never fails. Unknown markers
// degrade to literal text.
package citation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/flowlens/flowlens/pkg/flowlens"
)

// markerPattern matches inline citation markers, tolerating missing
// diacritics and surrounding whitespace inside the parentheses.
var markerPattern = regexp.MustCompile(`(?i)\(ngu[ồo]n\s*\[(\d+)\]\)`)

// NoContentPlaceholder is returned as the sole segment when the input
// text is empty. The consuming renderer displays it verbatim.
const NoContentPlaceholder = "Chưa có thông tin"

// Citation is a resolved marker pointing into a source document.
type Citation struct {
	// ID is the 1-based citation identifier from the marker.
	ID int

	// Label is the visible link text, e.g. "[2]".
	Label string

	// DocumentID identifies the cited document.
	DocumentID string

	// Title is the document title, for tooltips.
	Title string

	// Preview is a short excerpt of the cited passage, for tooltips.
	Preview string

	// Highlight is the full retrieved passage used as the highlight
	// target inside the document view.
	Highlight string

	// TargetURL deep-links into the document view with the highlight
	// passage as a query parameter.
	TargetURL string
}

// Segment is one piece of resolved text. Exactly one of the two
// interpretations applies: when Citation is nil the segment is plain
// text (Text holds it verbatim); otherwise it is a citation link.
type Segment struct {
	Text     string
	Citation *Citation
}

// TargetURL builds the deep link into a document view that highlights
// the given passage.
func TargetURL(documentID, highlight string) string {
	return "/documents/" + documentID + "?highlight=" + url.QueryEscape(highlight)
}

// Resolve partitions text into an ordered alternation of plain-text
// segments and citation links. Plain segments preserve the original
// text exactly; only the consumed marker substrings are removed.
// A marker whose ID has no matching source stays in the output as the
// literal text "(Nguồn [N])". Empty input yields a single placeholder
// segment.
func Resolve(text string, sources []flowlens.CitationSource) []Segment {
	if text == "" {
		return []Segment{{Text: NoContentPlaceholder}}
	}

	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			segments = append(segments, Segment{Text: text[last:start]})
		}

		// The capture group is digits only; parse cannot fail.
		id, _ := strconv.Atoi(text[m[2]:m[3]])

		if src := findSource(sources, id); src != nil {
			segments = append(segments, Segment{
				Citation: &Citation{
					ID:         id,
					Label:      fmt.Sprintf("[%d]", id),
					DocumentID: src.DocumentID,
					Title:      src.Title,
					Preview:    src.ContentPreview,
					Highlight:  src.FullRetrievedText,
					TargetURL:  TargetURL(src.DocumentID, src.FullRetrievedText),
				},
			})
		} else {
			// No matching source: keep the marker as literal text.
			segments = append(segments, Segment{Text: fmt.Sprintf("(Nguồn [%d])", id)})
		}

		last = end
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}

	return segments
}

func findSource(sources []flowlens.CitationSource, id int) *flowlens.CitationSource {
	for i := range sources {
		if sources[i].CitationID == id {
			return &sources[i]
		}
	}
	return nil
}
