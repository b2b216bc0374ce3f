// Package types defines the workspace configuration and the standard error
// values shared by the workspace host, its plugins and the extend CLI.
package types
