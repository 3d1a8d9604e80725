// Package rendezvous provides an HTTP implementation of domain.ChannelClient.
//
// A directory service hands out short-lived channels; each channel is a URL
// two devices can write to and read from without addressing each other.
//
// Supported operations:
//   - Acquiring a channel: GET {base}/new returns a plain-text token, and the
//     channel address is {base}/{token}.
//   - Writing an envelope: POST {address} with an application/octet-stream
//     body.
//   - Reading a channel: GET {address}.
//
// Only a 200 status counts as success. Every failure, including an expired
// per-request timeout, wraps domain.ErrNetwork; timeouts additionally wrap
// domain.ErrTimeout. Nothing is retried at this layer.
package rendezvous
