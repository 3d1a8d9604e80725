package types

// ChannelHandle is a rendezvous channel issued by a directory service.
type ChannelHandle struct {
	Token   string `json:"token"`
	Address string `json:"address"`
}
