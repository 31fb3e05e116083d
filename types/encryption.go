package types

// CiphertextProof is the pair produced by every encryption: an opaque
// ciphertext and the proof that it is well formed. The encoding of both blobs
// depends on the engine that produced them.
type CiphertextProof struct {
	Ciphertext HexBytes `json:"ciphertext"`
	Proof      HexBytes `json:"proof"`
}

// Valid reports whether both fields are non-empty. An empty field marks an
// invalid or unverifiable pair.
func (cp *CiphertextProof) Valid() bool {
	return cp != nil && len(cp.Ciphertext) > 0 && len(cp.Proof) > 0
}

// KeyPair holds opaque key identifiers generated by an engine. Key material is
// never persisted by this module.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}
