// Package ws implements the text-framed subscription transport: one
// long-lived WebSocket per client, multiplexing GraphQL subscription
// operations identified by client-chosen ids.
package ws

import "encoding/json"

// Frame types, matching the wire protocol Apollo-era clients speak.
const (
	MsgConnectionInit      = "connection_init"
	MsgConnectionAck       = "connection_ack"
	MsgConnectionError     = "connection_error"
	MsgConnectionTerminate = "connection_terminate"
	MsgKeepAlive           = "ka"
	MsgStart               = "start"
	MsgData                = "data"
	MsgError               = "error"
	MsgComplete            = "complete"
	MsgStop                = "stop"
)

// Message is one protocol frame.
type Message struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartPayload carries the operation of a start frame.
type StartPayload struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// ParseMessage decodes a raw frame.
func ParseMessage(raw []byte) (Message, error) {
	var msg Message
	err := json.Unmarshal(raw, &msg)
	return msg, err
}

// ParseStartPayload decodes and validates the payload of a start frame.
func (m Message) ParseStartPayload() (StartPayload, error) {
	var payload StartPayload
	if err := json.Unmarshal(m.Payload, &payload); err != nil {
		return StartPayload{}, err
	}
	return payload, nil
}

func errorFrame(id, message string) Message {
	payload, _ := json.Marshal(map[string]string{"message": message})
	return Message{ID: id, Type: MsgError, Payload: payload}
}
