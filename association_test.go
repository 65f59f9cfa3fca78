package framevisx_test

import (
	"errors"
	"testing"

	. "github.com/calyptra/framevisx"
)

func TestAssociationCovers(t *testing.T) {
	tests := []struct {
		name  string
		assoc Association
		frame FrameIndex
		want  bool
	}{
		{"ubiquitous covers zero", Ubiquitous(), 0, true},
		{"ubiquitous covers any", Ubiquitous(), 9999, true},
		{"avoiding excludes its frame", Avoiding(3), 3, false},
		{"avoiding covers below", Avoiding(3), 2, true},
		{"avoiding covers above", Avoiding(3), 4, true},
		{"single covers its frame", Single(7), 7, true},
		{"single excludes below", Single(7), 6, false},
		{"single excludes zero", Single(7), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.assoc.Covers(tt.frame); got != tt.want {
				t.Errorf("%s.Covers(%d) = %v, want %v", tt.assoc, tt.frame, got, tt.want)
			}
		})
	}
}

func TestAssociationValidate(t *testing.T) {
	tests := []struct {
		name    string
		assoc   Association
		wantErr bool
	}{
		{"ubiquitous", Ubiquitous(), false},
		{"zero value is ubiquitous", Association{}, false},
		{"avoiding non-negative", Avoiding(0), false},
		{"single non-negative", Single(12), false},
		{"avoiding negative", Avoiding(-1), true},
		{"single negative", Single(-5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.assoc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedAssociation) {
				t.Errorf("Validate() error = %v, want ErrMalformedAssociation", err)
			}
		})
	}
}

func TestAssociationZeroValueKind(t *testing.T) {
	var a Association
	if a.Kind() != KindUbiquitous {
		t.Errorf("zero Association kind = %q, want %q", a.Kind(), KindUbiquitous)
	}
	if !a.Covers(42) {
		t.Error("zero Association should cover every frame")
	}
}

func TestAssociationString(t *testing.T) {
	tests := []struct {
		assoc Association
		want  string
	}{
		{Ubiquitous(), "ubiquitous"},
		{Avoiding(3), "avoiding(3)"},
		{Single(0), "single(0)"},
	}
	for _, tt := range tests {
		if got := tt.assoc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
