// Copyright 2026 The x-chain Authors
// This file is part of the x-chain governance library.
//
// The governance library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The governance library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the governance library. If not, see <http://www.gnu.org/licenses/>.

package governance

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Typehashes of the structured-data signing scheme. These must stay bit-exact
// with the deployed signers: the domain binds the governor name, the chain id
// and the governor identity; the ballot binds the proposal id and the support
// flag.
var (
	domainTypehash = crypto.Keccak256Hash([]byte("EIP712Domain(string name,uint256 chainId,address verifyingContract)"))
	ballotTypehash = crypto.Keccak256Hash([]byte("Ballot(uint256 proposalId,bool support)"))
)

// DomainSeparator computes the structured-data domain hash binding the
// governor name, the chain identity and the governor contract identity.
func DomainSeparator(name string, chainID *big.Int, governor common.Address) common.Hash {
	return crypto.Keccak256Hash(
		domainTypehash.Bytes(),
		crypto.Keccak256([]byte(name)),
		common.LeftPadBytes(chainID.Bytes(), 32),
		common.LeftPadBytes(governor.Bytes(), 32),
	)
}

// VoteDigest computes the signing digest of a ballot for the given domain.
// Signatures over this digest are accepted by CastVoteBySig.
func VoteDigest(name string, chainID *big.Int, governor common.Address, proposalID uint64, support bool) common.Hash {
	structHash := crypto.Keccak256(
		ballotTypehash.Bytes(),
		common.LeftPadBytes(new(big.Int).SetUint64(proposalID).Bytes(), 32),
		common.LeftPadBytes(boolToBytes(support), 32),
	)
	return crypto.Keccak256Hash(
		[]byte{0x19, 0x01},
		DomainSeparator(name, chainID, governor).Bytes(),
		structHash,
	)
}

// recoveryVerifier is the default SignatureVerifier, recovering the signer
// from a 65-byte [R || S || V] secp256k1 signature.
type recoveryVerifier struct{}

// NewSignatureVerifier returns the default secp256k1 recovery verifier.
func NewSignatureVerifier() SignatureVerifier {
	return recoveryVerifier{}
}

func (recoveryVerifier) Recover(digest common.Hash, sig []byte) (common.Address, error) {
	pubkey, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pubkey), nil
}

// boolToBytes converts a boolean to its unpadded word encoding.
func boolToBytes(b bool) []byte {
	if b {
		return []byte{1}
	}
	return nil
}
