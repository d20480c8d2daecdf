// Package node implements remote-node delegation plumbing: a registry
// of known nodes plus the line-JSON message envelope workers use to hand
// a task off to one of them.
package node

import (
	"encoding/json"
	"time"
)

// MessageType enumerates the wire message kinds from spec §4.9.
type MessageType string

const (
	Heartbeat    MessageType = "HEARTBEAT"
	TaskAssign   MessageType = "TASK_ASSIGN"
	TaskUpdate   MessageType = "TASK_UPDATE"
	TaskComplete MessageType = "TASK_COMPLETE"
	TaskError    MessageType = "TASK_ERROR"
	NodeStatus   MessageType = "NODE_STATUS"
	Shutdown     MessageType = "SHUTDOWN"
)

// Message is the line-JSON envelope exchanged between irisd nodes.
type Message struct {
	MsgType   MessageType     `json:"msg_type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	NodeID    string          `json:"node_id,omitempty"`
	TaskID    string          `json:"task_id,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp time.Time       `json:"timestamp,omitempty"`
}

// Encode serializes m as a single line of JSON terminated with "\n", the
// framing a line-JSON transport reads with bufio.Scanner.
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses one line of JSON into a Message.
func Decode(line []byte) (Message, error) {
	var m Message
	err := json.Unmarshal(line, &m)
	return m, err
}

// NewMessage builds a Message with Payload marshaled from payload and
// Timestamp set to now.
func NewMessage(msgType MessageType, nodeID, taskID string, payload any, now time.Time) (Message, error) {
	m := Message{MsgType: msgType, NodeID: nodeID, TaskID: taskID, Timestamp: now}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Message{}, err
		}
		m.Payload = data
	}
	return m, nil
}
