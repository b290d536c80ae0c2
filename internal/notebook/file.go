package notebook

import (
	"encoding/json"
	"fmt"
	"os"
)

// Read loads and decodes a notebook file from disk.
func Read(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	return Parse(data)
}

// Write encodes a notebook and writes it to disk. Jupyter writes .ipynb
// files with one-space indentation, so this does too.
func Write(path string, nb *Notebook) error {
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	return nil
}
