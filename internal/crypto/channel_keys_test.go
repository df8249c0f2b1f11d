package crypto

import (
	"bytes"
	"testing"
)

func TestGeneratePairingSecret_LengthAndRandomness(t *testing.T) {
	svc := NewChannelKeyService()

	s1, err := svc.GeneratePairingSecret()
	if err != nil {
		t.Fatalf("GeneratePairingSecret error: %v", err)
	}
	s2, err := svc.GeneratePairingSecret()
	if err != nil {
		t.Fatalf("GeneratePairingSecret error: %v", err)
	}

	if len(s1) != PairingSecretSize {
		t.Fatalf("secret length = %d, want %d", len(s1), PairingSecretSize)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected secrets to differ, but they are equal")
	}
}

func TestDeriveSessionKeys_DeterministicForSameInputs(t *testing.T) {
	svc := NewChannelKeyService()
	secret := bytes.Repeat([]byte{0xAB}, PairingSecretSize)

	k1, err := svc.DeriveSessionKeys(secret, "session-1")
	if err != nil {
		t.Fatalf("DeriveSessionKeys error: %v", err)
	}
	k2, err := svc.DeriveSessionKeys(secret, "session-1")
	if err != nil {
		t.Fatalf("DeriveSessionKeys error: %v", err)
	}

	if !bytes.Equal(k1.InitiatorToJoiner, k2.InitiatorToJoiner) {
		t.Fatalf("initiator keys differ for identical inputs")
	}
	if !bytes.Equal(k1.JoinerToInitiator, k2.JoinerToInitiator) {
		t.Fatalf("joiner keys differ for identical inputs")
	}
}

func TestDeriveSessionKeys_DirectionsAndSessionsAreSeparated(t *testing.T) {
	svc := NewChannelKeyService()
	secret := bytes.Repeat([]byte{0xCD}, PairingSecretSize)

	keys, err := svc.DeriveSessionKeys(secret, "session-1")
	if err != nil {
		t.Fatalf("DeriveSessionKeys error: %v", err)
	}
	if len(keys.InitiatorToJoiner) != 32 || len(keys.JoinerToInitiator) != 32 {
		t.Fatalf("key lengths = %d/%d, want 32/32",
			len(keys.InitiatorToJoiner), len(keys.JoinerToInitiator))
	}
	if bytes.Equal(keys.InitiatorToJoiner, keys.JoinerToInitiator) {
		t.Fatalf("directional keys must differ")
	}

	other, err := svc.DeriveSessionKeys(secret, "session-2")
	if err != nil {
		t.Fatalf("DeriveSessionKeys error: %v", err)
	}
	if bytes.Equal(keys.InitiatorToJoiner, other.InitiatorToJoiner) {
		t.Fatalf("same secret in a new session must yield new keys")
	}
}

func TestDeriveSessionKeys_RejectsWeakInputs(t *testing.T) {
	svc := NewChannelKeyService()

	if _, err := svc.DeriveSessionKeys([]byte("short"), "session-1"); err == nil {
		t.Fatalf("expected error for a short secret")
	}
	if _, err := svc.DeriveSessionKeys(bytes.Repeat([]byte{1}, 32), ""); err == nil {
		t.Fatalf("expected error for an empty session id")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	svc := NewChannelKeyService()
	keys, err := svc.DeriveSessionKeys(bytes.Repeat([]byte{0x11}, 32), "session-1")
	if err != nil {
		t.Fatalf("DeriveSessionKeys error: %v", err)
	}

	plaintext := []byte(`{"type":"handshake"}`)

	frame, err := svc.Seal(keys.InitiatorToJoiner, 1, plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if bytes.Contains(frame, plaintext) {
		t.Fatalf("sealed frame leaks plaintext")
	}

	got, err := svc.Open(keys.InitiatorToJoiner, 1, frame)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip = %q, want %q", got, plaintext)
	}
}

func TestSeal_CounterChangesFrame(t *testing.T) {
	svc := NewChannelKeyService()
	key := bytes.Repeat([]byte{0x22}, 32)
	plaintext := []byte("same payload")

	f1, err := svc.Seal(key, 1, plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	f2, err := svc.Seal(key, 2, plaintext)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(f1, f2) {
		t.Fatalf("frames with different counters must differ")
	}
}

func TestOpen_RejectsTampering(t *testing.T) {
	svc := NewChannelKeyService()
	key := bytes.Repeat([]byte{0x33}, 32)
	frame, err := svc.Seal(key, 7, []byte("payload"))
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	t.Run("wrong counter", func(t *testing.T) {
		if _, err := svc.Open(key, 8, frame); err == nil {
			t.Fatalf("expected error for a mismatched counter")
		}
	})

	t.Run("flipped byte", func(t *testing.T) {
		tampered := bytes.Clone(frame)
		tampered[0] ^= 0x01
		if _, err := svc.Open(key, 7, tampered); err == nil {
			t.Fatalf("expected error for a tampered frame")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other := bytes.Repeat([]byte{0x44}, 32)
		if _, err := svc.Open(other, 7, frame); err == nil {
			t.Fatalf("expected error for a foreign key")
		}
	})
}

func TestSeal_RejectsBadKeyLength(t *testing.T) {
	svc := NewChannelKeyService()

	if _, err := svc.Seal([]byte("short-key"), 1, []byte("x")); err == nil {
		t.Fatalf("expected error for a short key")
	}
	if _, err := svc.Open([]byte("short-key"), 1, []byte("x")); err == nil {
		t.Fatalf("expected error for a short key")
	}
}
