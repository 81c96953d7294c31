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

// govdigest computes the structured-data ballot digest accepted by
// CastVoteBySig, for offline signers that cannot or do not want to construct
// the domain themselves. With -sign it also produces the signature and
// verifies it recovers to the signing key's address.
package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-chain/governance"
)

func main() {
	var (
		name     = flag.String("name", "X Governor", "governor name bound into the signing domain")
		chainID  = flag.Int64("chainid", 1, "chain id bound into the signing domain")
		governor = flag.String("governor", "", "governor contract address (0x-prefixed hex)")
		proposal = flag.Uint64("proposal", 0, "proposal id to vote on")
		support  = flag.Bool("support", true, "vote in favor of the proposal")
		signKey  = flag.String("sign", "", "hex private key to sign the digest with (optional)")
	)
	flag.Parse()

	if !common.IsHexAddress(*governor) {
		fmt.Fprintf(os.Stderr, "invalid or missing -governor address\n")
		os.Exit(1)
	}
	if *proposal == 0 {
		fmt.Fprintf(os.Stderr, "missing -proposal id\n")
		os.Exit(1)
	}
	addr := common.HexToAddress(*governor)
	id := new(big.Int).SetInt64(*chainID)

	separator := governance.DomainSeparator(*name, id, addr)
	digest := governance.VoteDigest(*name, id, addr, *proposal, *support)

	fmt.Printf("Domain separator: %s\n", separator.Hex())
	fmt.Printf("Ballot digest:    %s\n", digest.Hex())

	if *signKey == "" {
		return
	}
	key, err := crypto.HexToECDSA(*signKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid signing key: %v\n", err)
		os.Exit(1)
	}
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signing failed: %v\n", err)
		os.Exit(1)
	}
	recovered, err := governance.NewSignatureVerifier().Recover(digest, sig)
	if err != nil || recovered != crypto.PubkeyToAddress(key.PublicKey) {
		fmt.Fprintf(os.Stderr, "signature does not recover to the signing address\n")
		os.Exit(1)
	}
	fmt.Printf("Voter:            %s\n", recovered.Hex())
	fmt.Printf("Signature:        0x%x\n", sig)
}
