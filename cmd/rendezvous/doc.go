// Package main runs an in-memory rendezvous directory for local development
// and tests. It hands out channels and holds the last blob written to each
// until a peer reads it.
//
// HTTP API
//
//	GET /new
//	    Create a channel and return its token as text/plain.
//
//	POST /{token}
//	    Store the request body in the channel, replacing any previous blob.
//
//	GET /{token}
//	    Return the stored blob. 404 if the channel is unknown, expired or
//	    still empty.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Channels expire after --ttl and are swept lazily.
//   - Bodies above --max-body are rejected with 413.
//   - The default listen address is :8080.
//
// The server never sees plaintext: writers post encrypted envelopes and the
// keys travel out of band in the pairing code.
package main
