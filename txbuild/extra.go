package txbuild

import (
	"github.com/zentcash/zentwallet/chainparams"
	"github.com/zentcash/zentwallet/keys"
)

// ExtraOptions carries the optional pieces of tx_extra beyond the
// always-present transaction public key.
type ExtraOptions struct {
	PaymentID     *PaymentID
	ArbitraryData []byte
}

// BuildExtra assembles the tx_extra blob in the required order: the
// extra-nonce sub-blob (payment ID and/or arbitrary data), if either is
// present, followed by the transaction public key tag and bytes.
func BuildExtra(txPublicKey keys.PublicKey, opts ExtraOptions) []byte {
	var extra []byte

	if nonce := buildExtraNonce(opts); len(nonce) > 0 {
		extra = append(extra, chainparams.ExtraNonceTag)
		extra = appendUvarint(extra, uint64(len(nonce)))
		extra = append(extra, nonce...)
	}

	extra = append(extra, chainparams.ExtraPubkeyTag)
	extra = append(extra, txPublicKey[:]...)

	return extra
}

func buildExtraNonce(opts ExtraOptions) []byte {
	var nonce []byte

	if opts.PaymentID != nil {
		nonce = append(nonce, chainparams.ExtraPaymentIDTag)
		nonce = append(nonce, opts.PaymentID[:]...)
	}

	if len(opts.ArbitraryData) > 0 {
		nonce = append(nonce, chainparams.ExtraArbitraryDataID)
		nonce = appendUvarint(nonce, uint64(len(opts.ArbitraryData)))
		nonce = append(nonce, opts.ArbitraryData...)
	}

	return nonce
}
