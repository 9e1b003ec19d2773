package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
