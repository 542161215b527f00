// internal/writers/json.go
package writers

import (
	"io"

	"promoscan/internal/jsonutil"
)

func init() {
	Register("json", WriteJSON)
	Register("jsonl", WriteJSONL)
}

// WriteJSON writes the whole run as one indented api.RunV1 document.
func WriteJSON(w io.Writer, r Result) error {
	return jsonutil.EncodePretty(w, ToAPIRun(r))
}

// WriteJSONL writes one api.ConsensusV1 per line, "all" first.
func WriteJSONL(w io.Writer, r Result) error {
	return jsonutil.EncodeLines(w, ToAPIConsensus(r.Registry), IsBrokenPipe)
}
