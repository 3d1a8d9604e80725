// Package pairing runs the initiating side of a pairing session.
//
// A session generates key material, encrypts the captured login state,
// acquires a rendezvous channel, shows the pairing code and writes the
// envelope. It moves through
//
//	initializing -> awaiting-channel -> writing -> completed | failed
//
// and is never resumed: a failed session must be replaced by a new one with
// fresh keys.
package pairing
