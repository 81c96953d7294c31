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
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// journalVersion guards against replaying snapshots written by an
// incompatible engine.
const journalVersion = 1

// Proposals are permanent history, so the registry can outlive the process:
// Snapshot writes the full registry as a single RLP stream and Restore loads
// it back into a fresh engine. Receipts are flattened into voter-sorted lists
// because RLP has no map encoding.

type journalReceipt struct {
	Voter   common.Address
	Support bool
	Votes   *uint256.Int
}

type journalProposal struct {
	ID           uint64
	Proposer     common.Address
	Targets      []common.Address
	Signatures   []string
	Calldatas    [][]byte
	StartBlock   uint64
	EndBlock     uint64
	LifetimeEnd  uint64
	ForVotes     *uint256.Int
	AgainstVotes *uint256.Int
	Canceled     bool
	Executed     bool
	Receipts     []journalReceipt
}

type journalSnapshot struct {
	Version   uint64
	Proposals []journalProposal
}

// Snapshot writes the entire proposal registry to w as an RLP stream. The
// snapshot is deterministic: proposals in id order, receipts in voter order.
func (e *GovernanceEngine) Snapshot(w io.Writer) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := journalSnapshot{
		Version:   journalVersion,
		Proposals: make([]journalProposal, 0, e.proposalCount),
	}
	for id := uint64(1); id <= e.proposalCount; id++ {
		p := e.proposals[id]
		jp := journalProposal{
			ID:           p.ID,
			Proposer:     p.Proposer,
			Targets:      p.Targets,
			Signatures:   p.Signatures,
			Calldatas:    p.Calldatas,
			StartBlock:   p.StartBlock,
			EndBlock:     p.EndBlock,
			LifetimeEnd:  p.LifetimeEnd,
			ForVotes:     p.ForVotes,
			AgainstVotes: p.AgainstVotes,
			Canceled:     p.Canceled,
			Executed:     p.Executed,
			Receipts:     make([]journalReceipt, 0, len(p.receipts)),
		}
		for voter, receipt := range p.receipts {
			jp.Receipts = append(jp.Receipts, journalReceipt{
				Voter:   voter,
				Support: receipt.Support,
				Votes:   receipt.Votes,
			})
		}
		sort.Slice(jp.Receipts, func(i, j int) bool {
			return bytes.Compare(jp.Receipts[i].Voter[:], jp.Receipts[j].Voter[:]) < 0
		})
		snap.Proposals = append(snap.Proposals, jp)
	}
	return rlp.Encode(w, &snap)
}

// Restore loads a snapshot written by Snapshot into the engine. It is only
// permitted on an engine whose registry is still empty.
func (e *GovernanceEngine) Restore(r io.Reader) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.proposalCount != 0 {
		return fmt.Errorf("%w: registry is not empty", ErrInvalidState)
	}
	var snap journalSnapshot
	if err := rlp.Decode(r, &snap); err != nil {
		return fmt.Errorf("corrupt governance snapshot: %w", err)
	}
	if snap.Version != journalVersion {
		return fmt.Errorf("unsupported governance snapshot version %d", snap.Version)
	}
	for i, jp := range snap.Proposals {
		if jp.ID != uint64(i)+1 {
			return fmt.Errorf("corrupt governance snapshot: proposal %d out of sequence", jp.ID)
		}
		p := &Proposal{
			ID:           jp.ID,
			Proposer:     jp.Proposer,
			Targets:      jp.Targets,
			Signatures:   jp.Signatures,
			Calldatas:    jp.Calldatas,
			StartBlock:   jp.StartBlock,
			EndBlock:     jp.EndBlock,
			LifetimeEnd:  jp.LifetimeEnd,
			ForVotes:     jp.ForVotes,
			AgainstVotes: jp.AgainstVotes,
			Canceled:     jp.Canceled,
			Executed:     jp.Executed,
			receipts:     make(map[common.Address]*Receipt, len(jp.Receipts)),
		}
		for _, jr := range jp.Receipts {
			p.receipts[jr.Voter] = &Receipt{
				HasVoted: true,
				Support:  jr.Support,
				Votes:    jr.Votes,
			}
		}
		e.proposals[jp.ID] = p
		// Ids ascend, so the last write per proposer is their latest.
		e.latestProposalIDs[jp.Proposer] = jp.ID
	}
	e.proposalCount = uint64(len(snap.Proposals))

	log.Info("Governance registry restored", "proposals", e.proposalCount)
	return nil
}
