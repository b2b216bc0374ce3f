// Package main provides the extend CLI.
package main

import "github.com/mesh-intelligence/extend/internal/cli"

func main() {
	cli.Execute()
}
