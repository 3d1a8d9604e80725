// Package app wires application dependencies for the CLI.
//
// It loads Config (defaults, YAML file, PROXYLENS_* environment), builds the
// slog logger and the rendezvous client, and hands out pairing sessions via
// Wire.
package app
