package interfaces

import domaintypes "proxylens/internal/domain/types"

// Renderer displays a pairing code to the user, typically as a scannable
// image.
type Renderer interface {
	Show(code domaintypes.PairingCode) error
	// Invalidate tells the user a code already shown can no longer be used.
	Invalidate(reason error)
}
