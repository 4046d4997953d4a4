package handlers

import (
	"encoding/hex"
	"fmt"
	"strings"

	"goteleportbridge/config"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	log "github.com/sirupsen/logrus"
)

// authenticate checks that the request really comes from account. With
// bridge.require_signatures set, accounts are EVM-style addresses and each
// request carries a personal-sign of the account string produced by that
// account's own key. Without it the account field is trusted as-is, which
// only makes sense behind an authenticating proxy.
func authenticate(account, signature string) error {
	if !config.Config.Bridge.RequireSignatures {
		return nil
	}

	address, err := validateMsgSignature(account, signature)
	if err != nil || address == nil {
		return fmt.Errorf("no signature or malformed signature provided")
	}

	if !strings.EqualFold(account, address.Hex()) {
		log.Printf("Recovered sig address '%s', provided '%s'", address.Hex(), account)
		return fmt.Errorf("signature does not match the account provided")
	}

	return nil
}

func prefixHash(data []byte) common.Hash {
	msg := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(data), data)
	return crypto.Keccak256Hash([]byte(msg))
}

func publicKeyBytesToAddress(publicKey []byte) *common.Address {
	if len(publicKey) < 1 {
		return nil
	}

	hash := crypto.Keccak256Hash(publicKey[1:]).Bytes()
	address := hash[12:]

	addr := common.HexToAddress(hex.EncodeToString(address))
	return &addr
}

func validateMsgSignature(msg string, sig string) (*common.Address, error) {

	sigBytes, err := hexutil.Decode(sig)
	if err != nil {
		log.Printf("Invalid signature '%s' hex: %s", sig, err.Error())
		return nil, fmt.Errorf("invalid signature hex")
	}

	if len(sigBytes) != 65 {
		log.Printf("Wrong signature '%s' length: %d", sig, len(sigBytes))
		return nil, fmt.Errorf("wrong signature length")
	}

	if sigBytes[64] != 27 && sigBytes[64] != 28 && sigBytes[64] != 0 && sigBytes[64] != 1 {
		log.Printf("Wrong signature '%s' checksum: %v", sig, sigBytes[64])
		return nil, fmt.Errorf("wrong signature checksum")
	}

	if sigBytes[64] == 27 || sigBytes[64] == 28 {
		sigBytes[64] = sigBytes[64] - 27
	}

	msgHash := prefixHash([]byte(msg))
	sigPublicKey, err := crypto.Ecrecover(msgHash.Bytes(), sigBytes)
	if err != nil {
		log.Printf("Cannot decode public key: %s", err.Error())
		return nil, fmt.Errorf("cannot decode public key")
	}

	address := publicKeyBytesToAddress(sigPublicKey)

	return address, nil
}
