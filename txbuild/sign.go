package txbuild

import (
	"github.com/zentcash/zentwallet/keys"
	"github.com/zentcash/zentwallet/primitives"
)

// SignTransaction implements component F. It hashes the transaction
// prefix, generates a ring signature per input, and self-verifies each
// one before returning. A self-verification failure fails the whole
// build — it guards against silent key-material mistakes rather than
// letting an invalid transaction reach the node.
func SignTransaction(ops primitives.KeyOps, tx *Transaction, rings []ObscuredInput, ephemerals []keys.SecretKey) error {
	prefixHash := primitives.Keccak256(tx.PrefixBytes())

	signatures := make([]primitives.RingSignature, len(tx.Inputs))

	for i, ring := range rings {
		pubKeys := make([]keys.PublicKey, len(ring.Outputs))
		for j, m := range ring.Outputs {
			pubKeys[j] = m.OneTimePublicKey
		}

		sig, err := ops.GenerateRingSignature(
			prefixHash,
			tx.Inputs[i].KeyImage,
			pubKeys,
			ring.RealOutputPosition,
			ephemerals[i],
		)
		if err != nil {
			return NewErrorContext(ErrFailedToCreateRingSignature, err.Error())
		}

		if !ops.CheckRingSignature(prefixHash, tx.Inputs[i].KeyImage, pubKeys, sig) {
			return NewError(ErrFailedToCreateRingSignature)
		}

		signatures[i] = sig
	}

	tx.Signatures = signatures
	return nil
}
