// Package memzero clears secret buffers.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites every buffer with zeros. Nil and empty buffers are skipped.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
		runtime.KeepAlive(b)
	}
}
