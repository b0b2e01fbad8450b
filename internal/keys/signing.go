package keys

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/cloudflare/circl/sign/ed25519"

	"prism/infrastructure"
)

// Upload and rotation requests are signed with the private half of the
// identity key, proving possession without any session state. The signed
// message is a canonical byte encoding of the request:
//
//	<timestamp>\n
//	<key_id>:<public_key>\n        (one line per pre-key, batch order)
//
// For signed pre-key rotation the line is <key_id>:<public_key>:<signature>.
// Identity keys and signatures travel base64-encoded; the identity key must
// decode to a 32-byte Ed25519 public key.

func uploadMessage(timestamp int64, preKeys []PreKey) []byte {
	var b bytes.Buffer
	b.WriteString(strconv.FormatInt(timestamp, 10))
	b.WriteByte('\n')
	for _, pk := range preKeys {
		b.WriteString(strconv.Itoa(pk.KeyID))
		b.WriteByte(':')
		b.WriteString(pk.PublicKey)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

func rotationMessage(timestamp int64, signed *SignedPreKey) []byte {
	var b bytes.Buffer
	b.WriteString(strconv.FormatInt(timestamp, 10))
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(signed.KeyID))
	b.WriteByte(':')
	b.WriteString(signed.PublicKey)
	b.WriteByte(':')
	b.WriteString(signed.Signature)
	b.WriteByte('\n')
	return b.Bytes()
}

func verifySignature(identityKeyB64 string, message []byte, signatureB64 string) error {
	pub, err := base64.StdEncoding.DecodeString(identityKeyB64)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: identity key is not a valid signing key", infrastructure.ErrSignatureInvalid)
	}

	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: malformed signature", infrastructure.ErrSignatureInvalid)
	}

	if !ed25519.Verify(ed25519.PublicKey(pub), message, sig) {
		return infrastructure.ErrSignatureInvalid
	}
	return nil
}
