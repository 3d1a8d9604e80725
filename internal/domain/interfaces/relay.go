package interfaces

import (
	"context"

	domaintypes "proxylens/internal/domain/types"
)

// ChannelClient talks to the rendezvous directory and to the channels it
// issues. Calls are single-shot: no retries.
type ChannelClient interface {
	AcquireChannel(ctx context.Context) (domaintypes.ChannelHandle, error)
	WriteEnvelope(
		ctx context.Context,
		handle domaintypes.ChannelHandle,
		envelope domaintypes.EncryptedEnvelope,
	) error
}

// ChannelReader reads back whatever was last written to a channel.
type ChannelReader interface {
	ReadChannel(ctx context.Context, handle domaintypes.ChannelHandle) ([]byte, error)
}
