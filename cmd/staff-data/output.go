package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Command summaries go to stdout as one JSON object per line, so callers can
// pipe them straight into jq or a log collector.
func writeJSONLine(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
