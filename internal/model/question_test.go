package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAnswerWireShapes(t *testing.T) {
	tests := []struct {
		name string
		in   *Answer
		wire string
	}{
		{"bool", BoolAnswer(true), "true"},
		{"text", TextAnswer("Paris"), `"Paris"`},
		{"text list", TextListAnswer([]string{"O", "o"}), `["O","o"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.wire {
				t.Fatalf("wire = %s, want %s", data, tt.wire)
			}

			var back Answer
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(back, *tt.in) {
				t.Fatalf("round trip = %+v, want %+v", back, *tt.in)
			}
		})
	}
}

func TestAnswerRejectsOtherShapes(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte("42"), &a); err == nil {
		t.Fatalf("numeric answer must be rejected")
	}
	if err := json.Unmarshal([]byte(`{"k":"v"}`), &a); err == nil {
		t.Fatalf("object answer must be rejected")
	}
}

func TestAnswerNull(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte("null"), &a); err != nil {
		t.Fatalf("null: %v", err)
	}
	if a.Kind != AnswerNone {
		t.Fatalf("kind = %d, want AnswerNone", a.Kind)
	}
}
