//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	coverFile      = "coverage.out"
	envPostgresURL = "BIOBANK_TEST_POSTGRES_URL"
)

// Test groups test targets (all, unit, cover, postgres).
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs the tests in short mode.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Cover runs all tests and writes a coverage profile.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverFile)
}

// Postgres runs the storage tests against a live postgres.
func (Test) Postgres() error {
	url := os.Getenv(envPostgresURL)
	if url == "" {
		return fmt.Errorf("%s must point at a disposable database", envPostgresURL)
	}
	env := map[string]string{envPostgresURL: url}
	return sh.RunWithV(env, binGo, "test", "-v", "-run", "Postgres", "./internal/storage/...")
}
