package money

import "testing"

func TestParseToCents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "18.50", want: 1850},
		{in: "0", want: 0},
		{in: "3", want: 300},
		{in: " 14.50 ", want: 1450},
		{in: "-2.50", want: -250},
		{in: "1.999", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseToCents(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseToCents(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFromCents(t *testing.T) {
	t.Parallel()

	if got := FromCents(1450); got != "14.50" {
		t.Fatalf("FromCents(1450) = %s", got)
	}
	if got := FromCents(0); got != "0.00" {
		t.Fatalf("FromCents(0) = %s", got)
	}
	if got := FromCents(500); got != "5.00" {
		t.Fatalf("FromCents(500) = %s", got)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := Format("S/", 3400); got != "S/34.00" {
		t.Fatalf("Format = %s", got)
	}
}
