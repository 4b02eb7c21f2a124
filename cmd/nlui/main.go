// Command nlui generates, validates, renders and serves prompt-built UI
// documents.
//
// Usage:
//
//	nlui serve                     start the preview server
//	nlui generate <prompt...>      generate a document from a prompt
//	nlui validate <file>           check a document against the schema
//	nlui render <file>             render a document to HTML
//	nlui export <file>             write an export bundle
//	nlui templates list|import     manage the template catalog
//	nlui status                    check a running server
//	nlui version                   print version
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
