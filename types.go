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
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ProposalState is the lifecycle state of a proposal. It is never stored:
// the engine derives it from the proposal fields and the current checkpoint
// on every query.
type ProposalState uint8

const (
	StatePending ProposalState = iota
	StateActive
	StateCanceled
	StateDefeated
	StateSucceeded
	StateExpired
	StateExecuted

	// StateNull is unreachable under correct transition logic and exists
	// only as a defensive fallback of the state derivation.
	StateNull
)

// String implements fmt.Stringer.
func (s ProposalState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateActive:
		return "Active"
	case StateCanceled:
		return "Canceled"
	case StateDefeated:
		return "Defeated"
	case StateSucceeded:
		return "Succeeded"
	case StateExpired:
		return "Expired"
	case StateExecuted:
		return "Executed"
	default:
		return "Null"
	}
}

// Proposal is a batch of external actions subject to a token-weighted vote.
// Proposals are created only by Propose, mutated only by vote casting (the
// tallies), Cancel (the canceled flag) and Execute (the executed flag), and
// are never deleted.
type Proposal struct {
	ID       uint64 // sequential, 1-based; 0 means "none"
	Proposer common.Address

	// The action lists are parallel and equal length. A non-empty entry in
	// Signatures causes the 4-byte selector of that signature to be prefixed
	// to the corresponding calldata at execution time.
	Targets    []common.Address
	Signatures []string
	Calldatas  [][]byte

	StartBlock  uint64 // first checkpoint at which votes may be cast (exclusive)
	EndBlock    uint64 // last checkpoint at which votes may be cast (inclusive)
	LifetimeEnd uint64 // checkpoint at which an unexecuted proposal expires

	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int

	Canceled bool
	Executed bool

	receipts map[common.Address]*Receipt
}

// Receipt records one voter's participation in one proposal. It is created
// on the first (and only) vote of a voter and immutable thereafter; later
// weight changes of the voter never alter it.
type Receipt struct {
	HasVoted bool
	Support  bool
	Votes    *uint256.Int
}

// copy returns a detached copy of the proposal without its receipt table.
// Receipts are only reachable through GetReceipt, which copies too, so no
// internal state ever aliases caller-held memory.
func (p *Proposal) copy() *Proposal {
	cpy := &Proposal{
		ID:           p.ID,
		Proposer:     p.Proposer,
		Targets:      make([]common.Address, len(p.Targets)),
		Signatures:   make([]string, len(p.Signatures)),
		Calldatas:    make([][]byte, len(p.Calldatas)),
		StartBlock:   p.StartBlock,
		EndBlock:     p.EndBlock,
		LifetimeEnd:  p.LifetimeEnd,
		ForVotes:     p.ForVotes.Clone(),
		AgainstVotes: p.AgainstVotes.Clone(),
		Canceled:     p.Canceled,
		Executed:     p.Executed,
	}
	copy(cpy.Targets, p.Targets)
	copy(cpy.Signatures, p.Signatures)
	for i, data := range p.Calldatas {
		cpy.Calldatas[i] = append([]byte(nil), data...)
	}
	return cpy
}
