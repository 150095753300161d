package artifact

import "regexp"

// Marker regexes shared across validators. The pipeline's documents carry
// structured identifiers embedded in free text; these are the canonical
// patterns for each family.
var (
	// invariantMarkerRe matches invariant ids: IC-1, IS-12, IA-3, IT-4, IB-5.
	invariantMarkerRe = regexp.MustCompile(`I[CSATB]-\d+`)
	// acMarkerRe matches acceptance criterion ids: AC-SEC-1, AC-FUNC-12.
	acMarkerRe = regexp.MustCompile(`AC-(?:SEC|FUNC)-\d+`)
)

// InvariantMarkers returns every invariant id mentioned in text, in order,
// without de-duplication.
func InvariantMarkers(text string) []string {
	return invariantMarkerRe.FindAllString(text, -1)
}

// ACMarkers returns every acceptance criterion id mentioned in text, in
// order, without de-duplication.
func ACMarkers(text string) []string {
	return acMarkerRe.FindAllString(text, -1)
}
