package eventlog_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"shortlog/internal/eventlog"

	"github.com/stretchr/testify/assert"
)

type node struct {
	Name string `json:"name"`
	Next *node  `json:"next"`
}

type status string

type panickyStringer struct{}

func (*panickyStringer) String() string { panic("boom") }

func TestNormalizeMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  any
		expected string
	}{
		{"string is kept", "Incoming request: GET /abc", "Incoming request: GET /abc"},
		{"empty string", "", ""},
		{"map becomes JSON", map[string]int{"a": 1}, `{"a":1}`},
		{"map keys are sorted", map[string]any{"b": 2, "a": "x"}, `{"a":"x","b":2}`},
		{"struct uses json tags", struct {
			Code string `json:"code"`
		}{"abc"}, `{"code":"abc"}`},
		{"slice", []int{1, 2, 3}, `[1,2,3]`},
		{"nil", nil, "null"},
		{"html is not escaped", map[string]string{"q": "<a&b>"}, `{"q":"<a&b>"}`},
		{"raw json is compacted", json.RawMessage(`{ "a" : 1 }`), `{"a":1}`},
		{"bytes are text", []byte("plain"), "plain"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"large float is plain", 1e6, "1000000"},
		{"float32", float32(0.25), "0.25"},
		{"tiny float uses exponent", 1e-7, "1e-07"},
		{"huge float uses exponent", 1e21, "1e+21"},
		{"named string", status("ok"), "ok"},
		{"level is plain text", eventlog.LevelWarn, "warn"},
		{"bool", true, "true"},
		{"error", errors.New("connection refused"), "connection refused"},
		{"stringer", 1500 * time.Millisecond, "1.5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, eventlog.NormalizeMessage(tt.message))
		})
	}
}

func TestNormalizeMessage_UnserializableFailsOpen(t *testing.T) {
	cyclic := &node{Name: "a"}
	cyclic.Next = cyclic

	tests := []struct {
		name     string
		message  any
		expected string
	}{
		{"cycle", cyclic, "[unserializable message: *eventlog_test.node]"},
		{"channel", make(chan int), "[unserializable message: chan int]"},
		{"func", func() {}, "[unserializable message: func()]"},
		{"invalid raw json", json.RawMessage(`{`), "[unserializable message: json.RawMessage]"},
		{"panicking stringer", &panickyStringer{}, "[unserializable message: *eventlog_test.panickyStringer]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, eventlog.NormalizeMessage(tt.message))
			})
		})
	}
}
