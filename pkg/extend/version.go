// Package extend holds release metadata for the extend module.
package extend

// Version is the extend release version.
const Version = "0.1.0"
