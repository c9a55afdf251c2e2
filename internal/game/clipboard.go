package game

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copyToClipboard replaces the system clipboard text.
func copyToClipboard(s string) error {
	if s == "" {
		s = " "
	}
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
