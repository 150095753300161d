package normalize

import "os"

// ReadArtifact reads a JSON artifact from disk, extracts the JSON value
// from whatever the producing agent wrapped it in, and canonicalizes its
// status/severity fields. A missing file, read error, or unrecoverable
// content all return nil: absence is reported, not raised, and callers
// decide whether absence is itself a violation.
func ReadArtifact(path string) any {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	v := ExtractJSON(string(data))
	if v == nil {
		return nil
	}
	return Document(v)
}
