package util

import (
	"strings"
	"testing"
)

func TestEncryptDecryptAES(t *testing.T) {
	key := "test-encryption-key"

	testCases := []string{
		"Hello World",
		"Yulaf ezmesi, 150 kcal",
		"",
		"Special!@#$%^&*()",
		strings.Repeat("A", 1000),
	}

	for _, plaintext := range testCases {
		encrypted, err := EncryptAES(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}

		decrypted, err := DecryptAES(key, encrypted)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}

		if string(decrypted) != plaintext {
			t.Errorf("mismatch\nwant: %s\ngot:  %s", plaintext, decrypted)
		}
	}
}

func TestEncryptAES_DifferentKeys(t *testing.T) {
	plaintext := []byte("Secret Data")

	encrypted1, _ := EncryptAES("key1", plaintext)
	encrypted2, _ := EncryptAES("key2", plaintext)

	if string(encrypted1) == string(encrypted2) {
		t.Error("different keys should give different ciphertexts")
	}
}

func TestDecryptAES_WrongKey(t *testing.T) {
	encrypted, _ := EncryptAES("correct-key", []byte("Data"))

	if _, err := DecryptAES("wrong-key", encrypted); err == nil {
		t.Error("wrong key should fail to decrypt")
	}
}

func TestDecryptAES_InvalidData(t *testing.T) {
	key := "test-key"

	if _, err := DecryptAES(key, []byte{1, 2, 3}); err == nil {
		t.Error("short data should fail")
	}
	if _, err := DecryptAES(key, []byte{}); err == nil {
		t.Error("empty data should fail")
	}
}

func TestDeriveKeyStable(t *testing.T) {
	a := deriveKey("same")
	b := deriveKey("same")
	if len(a) != 32 {
		t.Fatalf("key length = %d, want 32", len(a))
	}
	if string(a) != string(b) {
		t.Error("deriveKey should be deterministic")
	}
	if string(a) == string(deriveKey("other")) {
		t.Error("different inputs should derive different keys")
	}
}

func TestEncryptString(t *testing.T) {
	enc, err := EncryptString("k", "POST /api/day/foods")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if enc == "POST /api/day/foods" {
		t.Fatal("value was not encrypted")
	}
	plain, err := DecryptString("k", enc)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "POST /api/day/foods" {
		t.Errorf("got %q", plain)
	}

	// without a key values pass through
	if v, _ := EncryptString("", "plain"); v != "plain" {
		t.Errorf("no key: got %q", v)
	}
	if v, _ := DecryptString("", "plain"); v != "plain" {
		t.Errorf("no key: got %q", v)
	}
	if _, err := DecryptString("k", "not base64!"); err == nil {
		t.Error("invalid base64 should fail")
	}
}

func BenchmarkEncryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EncryptAES(key, data)
	}
}
