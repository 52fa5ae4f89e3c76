package origin

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: "https://trusted.example", want: "https://trusted.example", wantOK: true},
		{raw: "HTTPS://Trusted.Example", want: "https://trusted.example", wantOK: true},
		{raw: "https://trusted.example:443", want: "https://trusted.example", wantOK: true},
		{raw: "http://localhost:80", want: "http://localhost", wantOK: true},
		{raw: "http://localhost:5173/", want: "http://localhost:5173", wantOK: true},
		{raw: "https://trusted.example:8443", want: "https://trusted.example:8443", wantOK: true},
		{raw: "http://[::1]:3000", want: "http://[::1]:3000", wantOK: true},
		{raw: "http://[::1]", want: "http://[::1]", wantOK: true},
		{raw: "  https://trusted.example  ", want: "https://trusted.example", wantOK: true},
		{raw: "", wantOK: false},
		{raw: "null", wantOK: false},
		{raw: "ftp://trusted.example", wantOK: false},
		{raw: "https://trusted.example/path", wantOK: false},
		{raw: "https://trusted.example/?q=1", wantOK: false},
		{raw: "https://trusted.example/#frag", wantOK: false},
		{raw: "https://user@trusted.example", wantOK: false},
		{raw: "https://trusted.example:0", wantOK: false},
		{raw: "https://trusted.example:99999", wantOK: false},
		{raw: "https://trusted.example:", wantOK: false},
		{raw: "trusted.example", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAllowList(t *testing.T) {
	list, err := NewAllowList([]string{"https://trusted.example", "http://localhost:5173"})
	if err != nil {
		t.Fatalf("NewAllowList() error = %v", err)
	}

	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "https://trusted.example", want: true},
		{origin: "https://TRUSTED.example:443", want: true},
		{origin: "http://localhost:5173", want: true},
		{origin: "https://evil.example", want: false},
		{origin: "http://trusted.example", want: false},
		{origin: "https://trusted.example.evil.example", want: false},
		{origin: "http://localhost:5174", want: false},
		{origin: "null", want: false},
	}
	for _, tt := range tests {
		if _, got := list.Allows(tt.origin); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestAllowList_Empty(t *testing.T) {
	var zero AllowList
	if !zero.Empty() {
		t.Errorf("zero AllowList is not empty")
	}
	if _, ok := zero.Allows("https://trusted.example"); ok {
		t.Errorf("zero AllowList allowed an origin")
	}

	list, err := NewAllowList(nil)
	if err != nil {
		t.Fatalf("NewAllowList(nil) error = %v", err)
	}
	if _, ok := list.Allows("https://trusted.example"); ok {
		t.Errorf("empty AllowList allowed an origin")
	}
}

func TestAllowList_Wildcard(t *testing.T) {
	list, err := NewAllowList([]string{Wildcard})
	if err != nil {
		t.Fatalf("NewAllowList() error = %v", err)
	}
	if list.Empty() {
		t.Errorf("wildcard AllowList reports empty")
	}
	if got, ok := list.Allows("https://Anything.example"); !ok || got != "https://anything.example" {
		t.Errorf("Allows() = %q, %v", got, ok)
	}
	if _, ok := list.Allows("not an origin"); ok {
		t.Errorf("wildcard allowed an invalid origin")
	}
}

func TestNewAllowList_Invalid(t *testing.T) {
	if _, err := NewAllowList([]string{"https://ok.example", "https://bad.example/path"}); err == nil {
		t.Errorf("NewAllowList() error = nil, want error for entry with path")
	}
}
