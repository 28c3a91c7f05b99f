package domain

import (
	"reflect"
	"testing"
)

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []string
	}{
		{name: "empty", encoded: "", want: nil},
		{name: "single", encoded: "0120", want: []string{"0120"}},
		{name: "many", encoded: "A,B,C", want: []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTokens(tt.encoded); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitTokens(%q) = %v, want %v", tt.encoded, got, tt.want)
			}
		})
	}
}

func TestRemoveTokens(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		toRemove []string
		want     []string
	}{
		{
			name:     "removes each selected token",
			tokens:   []string{"A", "B", "C", "D"},
			toRemove: []string{"B", "D"},
			want:     []string{"A", "C"},
		},
		{
			name:     "duplicate on board removed once per occurrence",
			tokens:   []string{"A", "B", "A", "C"},
			toRemove: []string{"A"},
			want:     []string{"B", "A", "C"},
		},
		{
			name:     "repeated selection removes repeated occurrences",
			tokens:   []string{"A", "B", "A", "C"},
			toRemove: []string{"A", "A"},
			want:     []string{"B", "C"},
		},
		{
			name:     "missing tokens are ignored",
			tokens:   []string{"A", "B"},
			toRemove: []string{"Z"},
			want:     []string{"A", "B"},
		},
		{
			name:     "nothing to remove",
			tokens:   []string{"A"},
			toRemove: nil,
			want:     []string{"A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveTokens(tt.tokens, tt.toRemove); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("RemoveTokens() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveFromBoard(t *testing.T) {
	if got := RemoveFromBoard("A,B,C,D,E", "E,A,C"); got != "B,D" {
		t.Fatalf("RemoveFromBoard() = %q, want %q", got, "B,D")
	}
	if got := RemoveFromBoard("A,B,C", "A,B,C"); got != "" {
		t.Fatalf("RemoveFromBoard() = %q, want empty board", got)
	}
}
