package datagen

import (
	"reflect"
	"testing"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want [][2]int
	}{
		{"empty", 0, 10, nil},
		{"single partial", 3, 10, [][2]int{{0, 3}}},
		{"exact", 4, 2, [][2]int{{0, 2}, {2, 4}}},
		{"remainder", 5, 2, [][2]int{{0, 2}, {2, 4}, {4, 5}}},
		{"size zero means one chunk", 5, 0, [][2]int{{0, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunks(tt.n, tt.size)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunks(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
			}
		})
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("orders", 2500, 1000)
	p.Update(1000)
	p.Update(1000)
	p.Update(500)
	if p.Rows() != 2500 {
		t.Errorf("Expected 2500 rows, got %d", p.Rows())
	}

	// Zero interval must not divide by zero
	q := NewProgressReporter("orders", 10, 0)
	q.Update(10)
	if q.Rows() != 10 {
		t.Errorf("Expected 10 rows, got %d", q.Rows())
	}
}
