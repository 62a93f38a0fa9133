package dump

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// Query runs a jq filter over doc and returns every result.
func Query(doc Document, query string) ([]any, error) {
	q, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("parsing query: %w", err)
	}

	// gojq works on plain JSON values
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	var results []any
	iter := q.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("running query: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}
