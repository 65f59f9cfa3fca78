package framevisx_test

import (
	"testing"

	. "github.com/calyptra/framevisx"
)

func BenchmarkActiveRecord(b *testing.B) {
	p := NewPrimitive(WithFrameSource(stack(64)))
	for f := FrameIndex(0); f < 32; f++ {
		if _, err := p.Add(nil, Single(f)); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ActiveRecord(FrameIndex(i % 64))
	}
}

func BenchmarkReassignSlotReplacement(b *testing.B) {
	p := NewPrimitive(WithFrameSource(stack(16)))
	rec, err := p.Add(nil, Single(0))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Reassign(rec, Single(FrameIndex(i%16))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAvoidingExpansion(b *testing.B) {
	src := stack(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		p := NewPrimitive(WithFrameSource(src))
		if _, err := p.Add(nil, Avoiding(3)); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()

		if _, err := p.Add(nil, Single(1)); err != nil {
			b.Fatal(err)
		}
	}
}
