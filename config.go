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
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// votingDelay is the number of checkpoints between proposal creation and
	// the start of its voting window.
	votingDelay = 1

	// maxProposalOperations caps the configurable per-proposal action count.
	maxProposalOperations = 10
)

// Config holds the engine parameters. It is fixed at construction and never
// mutated afterwards.
type Config struct {
	Name string // human-readable governor name, bound into the signing domain

	QuorumVotes       *uint256.Int // minimum for-votes for a proposal to succeed
	ProposalThreshold *uint256.Int // weight a proposer must strictly exceed

	ProposalMaxOperations uint64 // maximum actions per proposal, 1..10
	VotingPeriod          uint64 // voting window length in checkpoints
	ProposalLifetime      uint64 // checkpoints from start until expiry, > VotingPeriod

	ChainID         *big.Int       // chain identity bound into the signing domain
	GovernorAddress common.Address // contract identity bound into the signing domain
}

// DefaultConfig returns the engine parameters used on the main network:
// 4% quorum and 1% proposal threshold of a 10M token supply, a ~3 day voting
// window and a ~10 day proposal lifetime at 15s checkpoints.
func DefaultConfig() Config {
	return Config{
		Name:                  "X Governor",
		QuorumVotes:           uint256.MustFromDecimal("400000000000000000000000"),
		ProposalThreshold:     uint256.MustFromDecimal("100000000000000000000000"),
		ProposalMaxOperations: 10,
		VotingPeriod:          17280,
		ProposalLifetime:      57600,
		ChainID:               big.NewInt(1),
	}
}

// validate checks the configuration bounds against the oracle-reported total
// supply. Any violation rejects construction wholesale.
func (c *Config) validate(totalSupply *uint256.Int) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty governor name", ErrInvalidConfiguration)
	}
	if c.QuorumVotes == nil || c.QuorumVotes.IsZero() || !c.QuorumVotes.Lt(totalSupply) {
		return fmt.Errorf("%w: quorum votes must satisfy 0 < quorum < total supply", ErrInvalidConfiguration)
	}
	if c.ProposalThreshold == nil || c.ProposalThreshold.IsZero() || !c.ProposalThreshold.Lt(totalSupply) {
		return fmt.Errorf("%w: proposal threshold must satisfy 0 < threshold < total supply", ErrInvalidConfiguration)
	}
	if c.ProposalMaxOperations == 0 || c.ProposalMaxOperations > maxProposalOperations {
		return fmt.Errorf("%w: proposal max operations must be within 1..%d", ErrInvalidConfiguration, maxProposalOperations)
	}
	if c.VotingPeriod == 0 {
		return fmt.Errorf("%w: voting period must be positive", ErrInvalidConfiguration)
	}
	if c.ProposalLifetime <= c.VotingPeriod {
		return fmt.Errorf("%w: proposal lifetime must exceed the voting period", ErrInvalidConfiguration)
	}
	if c.ChainID == nil || c.ChainID.Sign() <= 0 {
		return fmt.Errorf("%w: missing chain id", ErrInvalidConfiguration)
	}
	return nil
}
