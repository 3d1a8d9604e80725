// Package envelope builds the encrypted transport message written to a
// rendezvous channel.
//
// Build performs, in order:
//
//  1. whitespace canonicalisation of the captured form markup (Minify)
//  2. compact JSON serialisation of {sa, sc, lf, cs} (Marshal)
//  3. AES-128-CBC with PKCS#7 padding under the session encryption key
//  4. HMAC-SHA256 over IV || ciphertext under the authentication key
//
// The IV is IVSize (32) bytes. Only its first aes.BlockSize bytes seed CBC;
// the whole value is transmitted and covered by the MAC.
package envelope
