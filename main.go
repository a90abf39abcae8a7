// LogAccess - hands BrowserPlus log files to whitelisted web pages.
//
// Build with: go build -ldflags "-X github.com/browserplus/logaccess/internal/version.Version=..."
package main

import (
	"os"

	"github.com/browserplus/logaccess/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
