package domain

import (
	interfaces "proxylens/internal/domain/interfaces"
	types "proxylens/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID         = types.SessionID
	Commitment        = types.Commitment
	KeyMaterial       = types.KeyMaterial
	SecurePayload     = types.SecurePayload
	EncryptedEnvelope = types.EncryptedEnvelope
	PairingCode       = types.PairingCode
	ChannelHandle     = types.ChannelHandle
	Capture           = types.Capture
	SessionState      = types.SessionState
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ChannelClient = interfaces.ChannelClient
	ChannelReader = interfaces.ChannelReader
	Renderer      = interfaces.Renderer
)

// Session states.
const (
	StateInitializing    = types.StateInitializing
	StateAwaitingChannel = types.StateAwaitingChannel
	StateWriting         = types.StateWriting
	StateCompleted       = types.StateCompleted
	StateFailed          = types.StateFailed
)

// Key material sizes.
const (
	EncryptionKeySize     = types.EncryptionKeySize
	IVSize                = types.IVSize
	AuthenticationKeySize = types.AuthenticationKeySize
)

// Error taxonomy.
var (
	ErrRandomGeneration = types.ErrRandomGeneration
	ErrNetwork          = types.ErrNetwork
	ErrTimeout          = types.ErrTimeout
	ErrEncoding         = types.ErrEncoding
)
