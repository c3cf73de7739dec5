package protocol

import (
	"encoding/json"
	"testing"
)

func TestParseInbound(t *testing.T) {
	in, err := ParseInbound([]byte(`{"command":"submit_guess","room_id":"r1","guess":"Kappa"}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if in.Command != CmdSubmitGuess || in.RoomID != "r1" || in.Guess != "Kappa" {
		t.Fatalf("unexpected inbound: %+v", in)
	}
}

func TestParseInboundEditRoom(t *testing.T) {
	in, err := ParseInbound([]byte(`{"command":"edit_room","room_id":"r1","game_duration":90}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if in.Command != CmdEditRoom || in.GameDuration != 90 {
		t.Fatalf("unexpected inbound: %+v", in)
	}
}

func TestParseInboundMissingCommand(t *testing.T) {
	if _, err := ParseInbound([]byte(`{"room_id":"r1"}`)); err != ErrMissingCommand {
		t.Fatalf("expected ErrMissingCommand, got %v", err)
	}
}

func TestParseInboundMalformed(t *testing.T) {
	if _, err := ParseInbound([]byte(`{"command":`)); err == nil {
		t.Fatal("expected an error for truncated JSON")
	}
}

func TestOutboundFramesAreFlat(t *testing.T) {
	payload, err := json.Marshal(RoomJoinMsg("r1", true, []string{"alice"}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(payload, &flat); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// The discriminant sits beside the payload fields in one object.
	if flat["command"] != MsgRoomJoin {
		t.Fatalf("missing command discriminant: %v", flat)
	}
	if flat["room_id"] != "r1" || flat["is_owner"] != true {
		t.Fatalf("payload fields not flat: %v", flat)
	}
}

func TestErrorMsgShape(t *testing.T) {
	payload, err := json.Marshal(ErrorMsg(ErrTypeRoomDisbanded, "room owner left room"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"command":"error","error_type":"room_disbanded","error_msg":"room owner left room"}`
	if string(payload) != want {
		t.Fatalf("error frame = %s, want %s", payload, want)
	}
}
