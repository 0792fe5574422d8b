package protocol_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/protocol"
)

func TestFromShards(t *testing.T) {
	cases := []struct {
		name       string
		containers int
		multikey   bool
		want       protocol.PID
	}{
		{"single shard multikey enabled", 1, true, protocol.UnionPIDMultikey},
		{"single shard multikey disabled", 1, false, protocol.UnionPID},
		{"multiple shards multikey enabled", 2, true, protocol.UnionPID},
		{"multiple shards multikey disabled", 4, false, protocol.UnionPID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := protocol.FromShards(tc.containers, tc.multikey); got != tc.want {
				t.Errorf("FromShards(%d, %v) = %s, want %s", tc.containers, tc.multikey, got, tc.want)
			}
		})
	}
}

func TestMaxIDColumnCount(t *testing.T) {
	if got := protocol.MaxIDColumnCount(protocol.UnionPIDMultikey); got != protocol.MultikeyMaxColumnCount {
		t.Errorf("multikey column count = %d, want %d", got, protocol.MultikeyMaxColumnCount)
	}
	if got := protocol.MaxIDColumnCount(protocol.UnionPID); got != 1 {
		t.Errorf("single-key column count = %d, want 1", got)
	}
}

func TestUseRowNumbers(t *testing.T) {
	cases := []struct {
		flag bool
		p    protocol.PID
		want bool
	}{
		{true, protocol.UnionPID, true},
		{true, protocol.UnionPIDMultikey, false},
		{false, protocol.UnionPID, false},
		{false, protocol.UnionPIDMultikey, false},
	}

	for _, tc := range cases {
		if got := protocol.UseRowNumbers(tc.flag, tc.p); got != tc.want {
			t.Errorf("UseRowNumbers(%v, %s) = %v, want %v", tc.flag, tc.p, got, tc.want)
		}
	}
}
