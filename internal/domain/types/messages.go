package types

// SecurePayload is the plaintext handed to the peer through the rendezvous
// channel. Field order is the serialisation order.
type SecurePayload struct {
	ServiceAddress    string     `json:"sa"`
	ServiceCommitment Commitment `json:"sc"`
	LoginForm         string     `json:"lf"`
	Cookies           string     `json:"cs"`
}

// EncryptedEnvelope is the transport message written to a channel. Byte
// fields are standard base64 on the wire.
type EncryptedEnvelope struct {
	IV         []byte `json:"iv"`
	Ciphertext []byte `json:"ciphertext"`
	MAC        []byte `json:"mac"`
}

// PairingCode is the bundle shown to the peer out of band. It carries the
// channel address and keys, never the payload.
type PairingCode struct {
	Tag            string `json:"t"`
	ChannelAddress string `json:"ta"`
	EncryptionKey  string `json:"ek"`
	MACKey         string `json:"mk"`
}
