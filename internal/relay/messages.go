package relay

const (
	typeInitialize = "initialize"
	typeAudio      = "audio"
	typeText       = "text"

	msgFirstMustInitialize = "First message must be initialize"
	msgChatNotFound        = "Chat not found"
)

// client -> relay. ChatID is a pointer so a missing key can default.
type inboundMessage struct {
	Type   string  `json:"type"`
	Data   string  `json:"data"`
	ChatID *string `json:"chat_id"`
}

// relay -> client
type audioMessage struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type errorMessage struct {
	Error string `json:"error"`
}
