package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
)

func testKey(t *testing.T) string {
	t.Helper()
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("rand: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestNewContentCipherRejectsBadKeys(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"too long", base64.StdEncoding.EncodeToString(make([]byte, 48))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewContentCipher(tc.key); err == nil {
				t.Errorf("expected error for key %q", tc.key)
			}
		})
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	c, err := NewContentCipher(testKey(t))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	plaintext := "Today was good. I went for a long walk and felt calm."
	sealed, err := c.Seal(plaintext)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if sealed == plaintext {
		t.Fatal("sealed output equals plaintext")
	}
	opened, err := c.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened != plaintext {
		t.Errorf("round trip mismatch: %q", opened)
	}
}

func TestSealEmptyPassesThrough(t *testing.T) {
	c, err := NewContentCipher(testKey(t))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	sealed, err := c.Seal("")
	if err != nil || sealed != "" {
		t.Errorf("got (%q, %v), want empty passthrough", sealed, err)
	}
	opened, err := c.Open("")
	if err != nil || opened != "" {
		t.Errorf("got (%q, %v), want empty passthrough", opened, err)
	}
}

func TestOpenWithWrongKeyFails(t *testing.T) {
	c1, err := NewContentCipher(testKey(t))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	c2, err := NewContentCipher(testKey(t))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	sealed, err := c1.Seal("private thoughts")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := c2.Open(sealed); err == nil {
		t.Error("expected open with wrong key to fail")
	}
}

func TestOpenRejectsTruncatedCiphertext(t *testing.T) {
	c, err := NewContentCipher(testKey(t))
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	short := base64.StdEncoding.EncodeToString([]byte("tiny"))
	if _, err := c.Open(short); err == nil {
		t.Error("expected error for truncated ciphertext")
	}
}
