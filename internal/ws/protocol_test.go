package ws

import (
	"encoding/json"
	"testing"
)

func TestParseMessageStart(t *testing.T) {
	raw := []byte(`{"id":"1","type":"start","payload":{"query":"subscription { projectCreated { id } }"}}`)

	msg, err := ParseMessage(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ID != "1" || msg.Type != MsgStart {
		t.Fatalf("unexpected frame: %+v", msg)
	}

	payload, err := msg.ParseStartPayload()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Query == "" {
		t.Fatalf("expected a query")
	}
}

func TestParseMessageMalformed(t *testing.T) {
	if _, err := ParseMessage([]byte(`{not json`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseStartPayloadMalformed(t *testing.T) {
	msg := Message{ID: "1", Type: MsgStart, Payload: json.RawMessage(`"not an object"`)}
	if _, err := msg.ParseStartPayload(); err == nil {
		t.Fatalf("expected payload error")
	}
}

func TestErrorFrameCarriesIDAndMessage(t *testing.T) {
	frame := errorFrame("42", "malformed start payload")
	if frame.ID != "42" || frame.Type != MsgError {
		t.Fatalf("unexpected frame: %+v", frame)
	}

	var payload map[string]string
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["message"] != "malformed start payload" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
