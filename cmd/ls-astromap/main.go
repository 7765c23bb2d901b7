// Command ls-astromap computes astrocartography charts from the terminal,
// over HTTP or in an interactive map.
package main

import "github.com/litescript/ls-astromap/internal/cli"

func main() {
	cli.Execute()
}
