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
	"github.com/ethereum/go-ethereum/event"
	"github.com/holiman/uint256"
)

// ProposalCreatedEvent is posted when a proposal enters the registry.
// The description is carried only here; the engine does not store it.
type ProposalCreatedEvent struct {
	ID          uint64
	Proposer    common.Address
	Targets     []common.Address
	Signatures  []string
	Calldatas   [][]byte
	StartBlock  uint64
	EndBlock    uint64
	LifetimeEnd uint64
	Description string
}

// VoteCastEvent is posted when a vote is recorded.
type VoteCastEvent struct {
	Voter   common.Address
	ID      uint64
	Support bool
	Weight  *uint256.Int
}

// ProposalCanceledEvent is posted when a proposal is canceled.
type ProposalCanceledEvent struct {
	ID uint64
}

// ProposalExecutedEvent is posted after every action of a proposal has been
// invoked successfully.
type ProposalExecutedEvent struct {
	ID uint64
}

// SubscribeProposalCreated registers a subscription for proposal creation
// events. The channel receives until the subscription or the engine is
// closed.
func (e *GovernanceEngine) SubscribeProposalCreated(ch chan<- ProposalCreatedEvent) event.Subscription {
	return e.scope.Track(e.createdFeed.Subscribe(ch))
}

// SubscribeVoteCast registers a subscription for vote-cast events.
func (e *GovernanceEngine) SubscribeVoteCast(ch chan<- VoteCastEvent) event.Subscription {
	return e.scope.Track(e.voteFeed.Subscribe(ch))
}

// SubscribeProposalCanceled registers a subscription for cancellation events.
func (e *GovernanceEngine) SubscribeProposalCanceled(ch chan<- ProposalCanceledEvent) event.Subscription {
	return e.scope.Track(e.canceledFeed.Subscribe(ch))
}

// SubscribeProposalExecuted registers a subscription for execution events.
func (e *GovernanceEngine) SubscribeProposalExecuted(ch chan<- ProposalExecutedEvent) event.Subscription {
	return e.scope.Track(e.executedFeed.Subscribe(ch))
}
