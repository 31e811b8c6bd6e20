package web

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/gridsnake/internal/snake"
)

// SubprotocolMsgpack selects MessagePack binary frames. Without it the
// connection speaks JSON text frames.
const SubprotocolMsgpack = "gridsnake.msgpack"

// Server to client message types.
const (
	MsgHello = "hello"
	MsgFrame = "frame"
	MsgSound = "sound"
	MsgError = "error"
)

// Client to server message types.
const (
	MsgInput   = "input"
	MsgRestart = "restart"
	MsgConfirm = "confirm"
	MsgSkin    = "skin"
)

// ServerMessage is everything the server sends. Exactly one payload field
// is set, matching Type.
type ServerMessage struct {
	Type  string          `json:"type"`
	Hello *Hello          `json:"hello,omitempty"`
	Frame *snake.Snapshot `json:"frame,omitempty"`
	Sound string          `json:"sound,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Hello is sent once when a connection opens.
type Hello struct {
	Session    string            `json:"session"`
	Variant    string            `json:"variant"`
	Title      string            `json:"title"`
	SkinChosen bool              `json:"skinChosen"`
	Colors     []string          `json:"colors,omitempty"`
	Icons      []string          `json:"icons,omitempty"`
	Sounds     map[string]string `json:"sounds"`
	TickMillis int64             `json:"tickMillis"`
}

// ClientMessage is everything a client sends.
type ClientMessage struct {
	Type  string `json:"type"`
	Dir   string `json:"dir,omitempty"`   // input: up, down, left, right
	Color string `json:"color,omitempty"` // skin
	Icon  string `json:"icon,omitempty"`  // skin
}

// Codec encodes messages for one connection.
type Codec interface {
	Name() string
	FrameType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                       { return "json" }
func (jsonCodec) FrameType() int                     { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// msgpackCodec reuses the json struct tags so both codecs share field names.
type msgpackCodec struct{}

func (msgpackCodec) Name() string   { return "msgpack" }
func (msgpackCodec) FrameType() int { return websocket.BinaryMessage }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("web: msgpack encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("web: msgpack decode: %w", err)
	}
	return nil
}

// CodecFor returns the codec for a negotiated subprotocol.
func CodecFor(subprotocol string) Codec {
	if subprotocol == SubprotocolMsgpack {
		return msgpackCodec{}
	}
	return jsonCodec{}
}
