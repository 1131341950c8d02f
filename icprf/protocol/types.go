package protocol

type MessageType uint8

const (
	MessageTypeDisclosure MessageType = 1
	MessageTypeHandover   MessageType = 2
	MessageTypeEnvelope   MessageType = 3

	MessageTypeSignedHandover MessageType = 4
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeDisclosure:
		return "DISCLOSURE"
	case MessageTypeHandover:
		return "HANDOVER"
	case MessageTypeEnvelope:
		return "ENVELOPE"
	case MessageTypeSignedHandover:
		return "SIGNED_HANDOVER"
	default:
		return "UNKNOWN"
	}
}
