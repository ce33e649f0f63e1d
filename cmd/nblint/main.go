// Package main provides the nblint command.
package main

import "github.com/leapstack-labs/nblint/internal/cli"

func main() {
	cli.Main()
}
