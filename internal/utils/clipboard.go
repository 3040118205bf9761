package utils

import "github.com/atotto/clipboard"

// CopyToClipboard places plain text on the system clipboard.
func CopyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
