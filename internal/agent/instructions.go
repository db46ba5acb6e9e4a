package agent

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

// GreetingInstruction is sent when a call starts.
const GreetingInstruction = "Greet the user and offer your assistance."

//go:embed prompt.md
var defaultInstructions string

// DefaultInstructions returns the built-in agent prompt.
func DefaultInstructions() string {
	return defaultInstructions
}

// LoadInstructions reads the agent prompt from path, or returns the
// built-in prompt when path is empty.
func LoadInstructions(path string) (string, error) {
	if path == "" {
		return defaultInstructions, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading agent instructions: %w", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("agent instructions %s are empty", path)
	}
	return text, nil
}
