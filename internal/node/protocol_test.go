package node

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m, err := NewMessage(TaskAssign, "node-1", "42", map[string]string{"goal": "build it"}, time.Now())
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}

	line, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasSuffix(string(line), "\n") {
		t.Fatal("expected line-JSON framing with trailing newline")
	}

	got, err := Decode(line[:len(line)-1])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.MsgType != TaskAssign || got.NodeID != "node-1" || got.TaskID != "42" {
		t.Fatalf("unexpected round-tripped message: %+v", got)
	}
}
