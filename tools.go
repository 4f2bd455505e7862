//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq (go:generate for consumer-interface mocks)
// - github.com/pressly/goose/v3/cmd/goose (declared in go.mod tool block;
//   cmd/migrate covers the same migrations without the CLI)
