package txbuild

import (
	"encoding/binary"

	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/primitives"
)

// PrefixBytes serializes the transaction without its signatures field —
// the exact message every ring signature is generated and verified
// over. Varints use encoding/binary's Uvarint/PutUvarint, which is
// bit-for-bit the same 7-bit-group continuation encoding CryptoNote
// uses; no third-party wrapper improves on the standard library here
// (see DESIGN.md).
func (t *Transaction) PrefixBytes() []byte {
	buf := make([]byte, 0, 256)

	buf = appendUvarint(buf, uint64(t.Version))
	buf = appendUvarint(buf, t.UnlockTime)

	buf = appendUvarint(buf, uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		buf = append(buf, chainparams.KeyInputTag)
		buf = appendUvarint(buf, in.Amount)
		buf = appendUvarint(buf, uint64(len(in.RelativeOutputIndexes)))
		for _, idx := range in.RelativeOutputIndexes {
			buf = appendUvarint(buf, idx)
		}
		buf = append(buf, in.KeyImage[:]...)
	}

	buf = appendUvarint(buf, uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		buf = appendUvarint(buf, out.Amount)
		buf = append(buf, chainparams.KeyOutputTag)
		buf = append(buf, out.OneTimePublicKey[:]...)
	}

	buf = appendUvarint(buf, uint64(len(t.Extra)))
	buf = append(buf, t.Extra...)

	return buf
}

// Bytes serializes the full transaction, prefix plus the per-input
// ring signatures. This is what gets handed to the node.
func (t *Transaction) Bytes() []byte {
	buf := t.PrefixBytes()

	for _, ring := range t.Signatures {
		buf = appendUvarint(buf, uint64(len(ring)))
		for _, elem := range ring {
			buf = append(buf, elem.C[:]...)
			buf = append(buf, elem.R[:]...)
		}
	}

	return buf
}

// Hash returns the transaction's identifying hash: Keccak-256 of its
// full wire encoding (prefix plus signatures), the same bytes the node
// hashes to identify the transaction once relayed.
func (t *Transaction) Hash() TransactionHash {
	digest := primitives.Keccak256(t.Bytes())
	var h TransactionHash
	_ = h.SetBytes(digest[:])
	return h
}

func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	return append(buf, tmp[:n]...)
}
