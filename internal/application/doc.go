// Package application provides application initialization and dependency
// wiring. It resolves the configuration store, applies startup overrides,
// and implements the shell actions, keeping the main package focused on CLI
// parsing and orchestration.
package application
