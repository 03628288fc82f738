package util

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// ReadJSONFile reads a JSON document from path and deserializes it into
// out. Used by create/update commands that accept --file input; shape
// validation is left to the API.
func ReadJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing JSON from %s: %w", path, err)
	}
	return nil
}
