package main

import (
	"fmt"
	"os"
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

func fatalSave(err error, backupPath string) {
	fmt.Fprint(os.Stderr, saveFailureMessage(err, backupPath))
	os.Exit(1)
}

// saveFailureMessage reports a failed write and, when a backup copy was
// taken first, tells the user where it is so the original can be restored.
func saveFailureMessage(err error, backupPath string) string {
	msg := fmt.Sprintf("Failed to write metadata: %v\n", err)
	if backupPath != "" {
		msg += fmt.Sprintf("Backup preserved at %s; restore it to recover the original.\n", backupPath)
	}
	return msg
}
