package protocol

import "testing"

func TestDecodeEscapedOctal(t *testing.T) {
	if got := DecodeEscapedOctal(`\101`); got != 'A' {
		t.Fatalf("decode \\101: got %d", got)
	}
	if got := DecodeEscapedOctal(`\000`); got != 0 {
		t.Fatalf("decode \\000: got %d", got)
	}
	if got := DecodeEscapedOctal(`\108`); got != EscapeNotFound {
		t.Fatalf("digit out of range should not decode, got %d", got)
	}
	if got := DecodeEscapedOctal(`\10`); got != EscapeNotFound {
		t.Fatalf("short sequence should not decode, got %d", got)
	}
	if got := DecodeEscapedOctal(`x101`); got != EscapeNotFound {
		t.Fatalf("missing backslash should not decode, got %d", got)
	}
}

func TestUnescapeOctal(t *testing.T) {
	if got := UnescapeOctal(`ssid\040name`); got != "ssid name" {
		t.Fatalf("unescape: got %q", got)
	}
	if got := UnescapeOctal(`\101\102C`); got != "ABC" {
		t.Fatalf("unescape consecutive: got %q", got)
	}
	// Invalid escapes copy through one character at a time.
	if got := UnescapeOctal(`a\9b`); got != `a\9b` {
		t.Fatalf("invalid escape should copy through: %q", got)
	}
}

func TestUnescapeOctalIdempotence(t *testing.T) {
	plain := "no escapes here"
	if got := UnescapeOctal(plain); got != plain {
		t.Fatalf("plain string changed: %q", got)
	}
	once := UnescapeOctal(`name\040tag`)
	if got := UnescapeOctal(once); got != once {
		t.Fatalf("not stable after full unescape: %q vs %q", got, once)
	}
}
