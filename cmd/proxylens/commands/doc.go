// Package commands defines the proxylens CLI and wires dependencies for subcommands.
//
// Commands
//
//   - pair     Capture a saved login page, show a pairing code, write the
//     encrypted payload to a fresh rendezvous channel
//   - commit   Print the commitment of a form action URL
//   - code     Acquire a channel and print a throwaway pairing code
//
// # Implementation
//
// The root command loads configuration (YAML file, PROXYLENS_* environment,
// then flags) and builds the logger and rendezvous client before any
// subcommand runs.
package commands
