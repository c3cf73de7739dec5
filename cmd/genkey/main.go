/*
Package main generates the HMAC signing key file the server requires at startup.

Usage:

	genkey [path]

The key is written to the given path (default "secret.key") with permissions
restricted to the owner. An existing file is never overwritten.
*/
package main

import (
	"fmt"
	"os"

	"emoteguessr/internal/pkg/keyfile"
)

func main() {
	path := "secret.key"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := keyfile.Generate(path); err != nil {
		fmt.Fprintf(os.Stderr, "genkey: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d-byte signing key to %s\n", keyfile.KeySize, path)
}
