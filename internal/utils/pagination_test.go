package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		// no trimming
		{"x", 5, 5},
		{" 42", 7, 7},
		// overflow
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestClampPageAndOffset(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
		wantOffset         int
	}{
		{0, 0, 1, DefaultPageSize, 0},
		{-3, 5, 1, 5, 0},
		{3, 10, 3, 10, 20},
		{2, 500, 2, MaxPageSize, MaxPageSize},
	}
	for _, tc := range cases {
		p, s := ClampPage(tc.page, tc.size)
		if p != tc.wantPage || s != tc.wantSize {
			t.Fatalf("ClampPage(%d,%d) = (%d,%d); want (%d,%d)", tc.page, tc.size, p, s, tc.wantPage, tc.wantSize)
		}
		if off := Offset(p, s); off != tc.wantOffset {
			t.Fatalf("Offset(%d,%d) = %d; want %d", p, s, off, tc.wantOffset)
		}
	}
	if Offset(0, 10) != 0 {
		t.Fatalf("Offset of page 0 should be 0")
	}
}

func TestNewPage(t *testing.T) {
	p := NewPage(1, 20, 41)
	if p.TotalPages != 3 || !p.HasNext || p.Total != 41 {
		t.Fatalf("unexpected page: %+v", p)
	}
	last := NewPage(3, 20, 41)
	if last.HasNext {
		t.Fatalf("last page must not report has_next: %+v", last)
	}
	empty := NewPage(1, 20, 0)
	if empty.TotalPages != 0 || empty.HasNext {
		t.Fatalf("empty listing: %+v", empty)
	}
	if z := NewPage(1, 0, 5); z.TotalPages != 0 {
		t.Fatalf("zero page size must not divide: %+v", z)
	}
}
