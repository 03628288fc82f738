package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct {
	w io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

// Format pretty-prints the response body. Decoding into generic maps and
// re-encoding with encoding/json gives stable, alphabetically sorted
// object keys regardless of the order the API sent them in.
func (f *JSONFormatter) Format(body []byte) error {
	var data any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
