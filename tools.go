//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: *_mock_test.go files (see the go:generate lines in tests)
// - github.com/pressly/goose/v3: migrations are run by cmd/migrate, not the goose CLI
