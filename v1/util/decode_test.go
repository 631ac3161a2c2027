// Copyright 2026 The OPA Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package util

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "valid object",
			input: `{"a": "x", "b": "y"}`,
			want:  map[string]string{"a": "x", "b": "y"},
		},
		{
			name:    "trailing garbage",
			input:   `{"a": "x"} trailing`,
			wantErr: true,
		},
		{
			name:    "two top-level values",
			input:   `{"a": "x"} {"b": "y"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			err := UnmarshalJSON([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalJSON failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalYAML(t *testing.T) {
	input := "a: x\nb: y\n"

	var got map[string]string
	if err := Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := map[string]string{"a": "x", "b": "y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestBufferPoolRoundTrip(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("content")
	PutBuffer(buf)

	buf = GetBuffer()
	defer PutBuffer(buf)
	if buf.Len() != 0 {
		t.Fatalf("pooled buffer not reset: %q", buf.String())
	}
}
