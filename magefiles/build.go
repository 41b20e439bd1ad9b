//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the biobank project using Mage.
//
// Usage:
//
//	mage build          Compile the biobank binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests with -short
//	mage test:cover     Run all tests and write coverage.out
//	mage test:postgres  Run the storage tests against $BIOBANK_TEST_POSTGRES_URL
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install biobank to GOPATH/bin
//	mage stats          Print Go lines of code
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "biobank"
	binaryDir  = "bin"
	cmdDir     = "./cmd/biobank"
	modulePath = "github.com/mesh-intelligence/biobank"
)

// ldflags stamps the release version into the cli package when
// BIOBANK_VERSION is set.
func ldflags() string {
	v := os.Getenv("BIOBANK_VERSION")
	if v == "" {
		return ""
	}
	return "-X " + modulePath + "/internal/cli.Version=" + v
}

// Build compiles the biobank binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.RemoveAll(coverFile); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
