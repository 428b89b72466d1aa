// Package output writes the JSON envelope shared by every command.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Envelope represents the JSON output format.
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success writes a success envelope carrying data.
func Success(w io.Writer, data any, message string) error {
	return writeJSON(w, Envelope{
		Status:  "success",
		Data:    data,
		Message: message,
	})
}

// Error writes an error envelope when jsonOutput is set and returns err
// unchanged so callers can `return output.Error(...)`.
func Error(w io.Writer, jsonOutput bool, err error) error {
	if jsonOutput {
		_ = writeJSON(w, Envelope{
			Status: "error",
			Error:  err.Error(),
		})
	}
	return err
}

// YAML writes v as a YAML document.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode YAML output: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode JSON output: %w", err)
	}
	return nil
}
