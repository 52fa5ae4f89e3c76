package audit

import (
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("secret-a")
	b := Fingerprint("secret-b")

	if a == b {
		t.Errorf("Fingerprint() collided for different inputs")
	}
	if a != Fingerprint("secret-a") {
		t.Errorf("Fingerprint() is not deterministic")
	}
	if strings.Contains(a, "secret") {
		t.Errorf("Fingerprint() = %q contains the input", a)
	}
	if got := Fingerprint(""); got != "(n/a)" {
		t.Errorf("Fingerprint(\"\") = %q, want (n/a)", got)
	}
}

func TestCreateUserAgent(t *testing.T) {
	ua := CreateUserAgent("c0ffee", "website-user", "chatkit")
	for _, want := range []string{"embedbroker/", "correlation_id=c0ffee", "user=website-user", "upstream=chatkit"} {
		if !strings.Contains(ua, want) {
			t.Errorf("CreateUserAgent() = %q, missing %q", ua, want)
		}
	}
}
