package revision

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint64
		minor uint64
		patch uint64
	}{
		{"0.0.0", 0, 0, 0},
		{"1.2.3", 1, 2, 3},
		{"1.0.0", 1, 0, 0},
		{"10.20.30", 10, 20, 30},
		{"01.2.3", 1, 2, 3},
		{"1.02.003", 1, 2, 3},
		{"4294967295.0.0", 4294967295, 0, 0},
		{"18446744073709551615.0.0", 18446744073709551615, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if r.Major != tt.major {
				t.Errorf("Major = %d, want %d", r.Major, tt.major)
			}
			if r.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", r.Minor, tt.minor)
			}
			if r.Patch != tt.patch {
				t.Errorf("Patch = %d, want %d", r.Patch, tt.patch)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"1.2.x",
		"abc",
		"-1.2.3",
		"+1.2.3",
		"1.-2.3",
		" 1.2.3",
		"1.2.3 ",
		"1.2.3\n",
		"1..3",
		".2.3",
		"1.2.",
		"..",
		"1,2,3",
		"v1.2.3",
		"1.2.3-rc1",
		"0x1.2.3",
		"1_0.2.3",
		"18446744073709551616.0.0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) should return error", input)
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformed", input, err)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []string{
		"0.0.0",
		"1.2.3",
		"1.10.0",
		"255.255.255",
		"18446744073709551615.18446744073709551615.18446744073709551615",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			r, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", input, err)
			}
			again, err := Parse(r.String())
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", r.String(), err)
			}
			if again != r {
				t.Errorf("round trip = %v, want %v", again, r)
			}
		})
	}
}

func TestRevision_String(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3", "1.2.3"},
		{"01.02.003", "1.2.3"},
		{"0.0.0", "0.0.0"},
		{"10.0.99", "10.0.99"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if r.String() != tt.want {
				t.Errorf("String() = %q, want %q", r.String(), tt.want)
			}
		})
	}
}

func TestRevision_Compare(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.2.4", "1.2.3", 1},
		{"1.2.3", "1.3.0", -1},
		{"1.9.0", "1.10.0", -1},
		{"1.9.9", "2.0.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"0.0.1", "0.0.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
			if got := a.Less(b); got != (tt.want < 0) {
				t.Errorf("Less = %v, want %v", got, tt.want < 0)
			}
		})
	}
}

func TestRevision_SameMajor(t *testing.T) {
	a := MustParse("1.0.0")
	b := MustParse("1.99.99")
	c := MustParse("2.0.0")

	if !a.SameMajor(b) {
		t.Error("1.0.0 and 1.99.99 should share a major")
	}
	if a.SameMajor(c) {
		t.Error("1.0.0 and 2.0.0 should NOT share a major")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse on malformed input should panic")
		}
	}()
	MustParse("not-a-revision")
}

func TestRevision_TextMarshaling(t *testing.T) {
	type doc struct {
		Rev Revision `json:"rev"`
	}

	data, err := json.Marshal(doc{Rev: MustParse("1.2.3")})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `{"rev":"1.2.3"}` {
		t.Errorf("Marshal = %s, want {\"rev\":\"1.2.3\"}", data)
	}

	var got doc
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got.Rev != MustParse("1.2.3") {
		t.Errorf("Unmarshal = %v, want 1.2.3", got.Rev)
	}

	var bad doc
	if err := json.Unmarshal([]byte(`{"rev":"1.2"}`), &bad); err == nil {
		t.Error("Unmarshal of short revision should return error")
	}
}
