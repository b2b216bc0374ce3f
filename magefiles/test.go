//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs all tests and writes a coverage profile to bin/cover.out.
func Cover() error {
	mg.Deps(ensureBinDir)
	profile := filepath.Join(binaryDir, "cover.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

func ensureBinDir() error {
	return os.MkdirAll(binaryDir, 0o755)
}
