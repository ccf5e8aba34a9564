// Package main provides the fluestern CLI process entrypoint.
package main

import (
	"os"

	"github.com/akessler/fluestern/internal/app"
)

func main() {
	os.Exit(app.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
