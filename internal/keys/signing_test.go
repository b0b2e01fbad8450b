package keys

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/infrastructure"
)

func newSigningIdentity(t *testing.T) (string, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(pub), priv
}

func signMessage(priv ed25519.PrivateKey, message []byte) string {
	return base64.StdEncoding.EncodeToString(ed25519.Sign(priv, message))
}

func TestVerifySignature(t *testing.T) {
	identity, priv := newSigningIdentity(t)
	message := uploadMessage(1700000000, []PreKey{
		{KeyID: 1, PublicKey: "pk-one"},
		{KeyID: 2, PublicKey: "pk-two"},
	})

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, verifySignature(identity, message, signMessage(priv, message)))
	})

	t.Run("tampered message", func(t *testing.T) {
		sig := signMessage(priv, message)
		other := uploadMessage(1700000001, []PreKey{{KeyID: 1, PublicKey: "pk-one"}})
		err := verifySignature(identity, other, sig)
		assert.True(t, errors.Is(err, infrastructure.ErrSignatureInvalid))
	})

	t.Run("wrong key", func(t *testing.T) {
		otherIdentity, _ := newSigningIdentity(t)
		err := verifySignature(otherIdentity, message, signMessage(priv, message))
		assert.True(t, errors.Is(err, infrastructure.ErrSignatureInvalid))
	})

	t.Run("identity key not base64", func(t *testing.T) {
		err := verifySignature("not base64!!", message, signMessage(priv, message))
		assert.True(t, errors.Is(err, infrastructure.ErrSignatureInvalid))
	})

	t.Run("identity key wrong length", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("short"))
		err := verifySignature(short, message, signMessage(priv, message))
		assert.True(t, errors.Is(err, infrastructure.ErrSignatureInvalid))
	})

	t.Run("malformed signature", func(t *testing.T) {
		err := verifySignature(identity, message, "%%%")
		assert.True(t, errors.Is(err, infrastructure.ErrSignatureInvalid))
	})
}

func TestCanonicalMessages(t *testing.T) {
	msg := uploadMessage(42, []PreKey{{KeyID: 7, PublicKey: "abc"}})
	assert.Equal(t, "42\n7:abc\n", string(msg))

	rot := rotationMessage(42, &SignedPreKey{KeyID: 3, PublicKey: "pub", Signature: "sig"})
	assert.Equal(t, "42\n3:pub:sig\n", string(rot))
}
