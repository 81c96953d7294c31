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
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
)

// GovernanceEngine owns the proposal registry and drives the proposal
// lifecycle: creation, voting, cancellation and batched execution. It is the
// single logical mutable resource of the system; every mutating operation is
// read-check-write atomic under one writer lock, queries share a reader lock
// and observe a consistent snapshot.
type GovernanceEngine struct {
	config      Config
	oracle      VotingWeightOracle
	executor    ActionExecutor
	verifier    SignatureVerifier
	checkpoints CheckpointSource

	mu                sync.RWMutex
	proposalCount     uint64
	proposals         map[uint64]*Proposal
	latestProposalIDs map[common.Address]uint64

	scope        event.SubscriptionScope
	createdFeed  event.Feed
	voteFeed     event.Feed
	canceledFeed event.Feed
	executedFeed event.Feed
}

// NewGovernanceEngine validates the configuration against the oracle-reported
// total supply and returns a ready engine. A nil verifier selects the default
// secp256k1 recovery verifier.
func NewGovernanceEngine(config Config, oracle VotingWeightOracle, executor ActionExecutor, verifier SignatureVerifier, checkpoints CheckpointSource) (*GovernanceEngine, error) {
	supply, err := oracle.TotalSupply()
	if err != nil {
		return nil, fmt.Errorf("total supply lookup failed: %w", err)
	}
	if err := config.validate(supply); err != nil {
		return nil, err
	}
	if verifier == nil {
		verifier = NewSignatureVerifier()
	}
	return &GovernanceEngine{
		config:            config,
		oracle:            oracle,
		executor:          executor,
		verifier:          verifier,
		checkpoints:       checkpoints,
		proposals:         make(map[uint64]*Proposal),
		latestProposalIDs: make(map[common.Address]uint64),
	}, nil
}

// Stop terminates all event subscriptions held against the engine.
func (e *GovernanceEngine) Stop() {
	e.scope.Close()
}

// Config returns the engine configuration.
func (e *GovernanceEngine) Config() Config {
	return e.config
}

// ProposalCount returns the number of proposals ever created.
func (e *GovernanceEngine) ProposalCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.proposalCount
}

// Propose creates a proposal from the given parallel action lists. The
// proposer's weight at the checkpoint preceding the current one must strictly
// exceed the proposal threshold, and any prior proposal of the same proposer
// must have left the Pending/Active window. Returns the new proposal id.
func (e *GovernanceEngine) Propose(proposer common.Address, targets []common.Address, signatures []string, calldatas [][]byte, description string) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.checkpoints.Checkpoint()
	prev, err := prevCheckpoint(now)
	if err != nil {
		return 0, err
	}
	weight, err := e.oracle.WeightAt(proposer, prev)
	if err != nil {
		return 0, fmt.Errorf("weight lookup failed: %w", err)
	}
	if weight.Cmp(e.config.ProposalThreshold) <= 0 {
		return 0, ErrInsufficientWeight
	}
	if len(targets) != len(signatures) || len(targets) != len(calldatas) {
		return 0, fmt.Errorf("%w: %d targets, %d signatures, %d calldatas",
			ErrMalformedProposal, len(targets), len(signatures), len(calldatas))
	}
	if len(targets) == 0 {
		return 0, fmt.Errorf("%w: no actions", ErrMalformedProposal)
	}
	if uint64(len(targets)) > e.config.ProposalMaxOperations {
		return 0, fmt.Errorf("%w: %d actions exceed the maximum of %d",
			ErrMalformedProposal, len(targets), e.config.ProposalMaxOperations)
	}
	if latest := e.latestProposalIDs[proposer]; latest != 0 {
		state, err := e.stateLocked(latest)
		if err != nil {
			return 0, err
		}
		if state == StateActive || state == StatePending {
			return 0, ErrConflictingProposal
		}
	}

	id := e.proposalCount + 1
	proposal := &Proposal{
		ID:           id,
		Proposer:     proposer,
		Targets:      append([]common.Address(nil), targets...),
		Signatures:   append([]string(nil), signatures...),
		Calldatas:    make([][]byte, len(calldatas)),
		StartBlock:   now + votingDelay,
		EndBlock:     now + votingDelay + e.config.VotingPeriod,
		LifetimeEnd:  now + votingDelay + e.config.ProposalLifetime,
		ForVotes:     uint256.NewInt(0),
		AgainstVotes: uint256.NewInt(0),
		receipts:     make(map[common.Address]*Receipt),
	}
	for i, data := range calldatas {
		proposal.Calldatas[i] = append([]byte(nil), data...)
	}

	e.proposalCount = id
	e.proposals[id] = proposal
	e.latestProposalIDs[proposer] = id

	proposalCreatedMeter.Mark(1)
	e.createdFeed.Send(ProposalCreatedEvent{
		ID:          id,
		Proposer:    proposer,
		Targets:     proposal.Targets,
		Signatures:  proposal.Signatures,
		Calldatas:   proposal.Calldatas,
		StartBlock:  proposal.StartBlock,
		EndBlock:    proposal.EndBlock,
		LifetimeEnd: proposal.LifetimeEnd,
		Description: description,
	})
	log.Info("Proposal created", "id", id, "proposer", proposer,
		"actions", len(targets), "start", proposal.StartBlock, "end", proposal.EndBlock)
	return id, nil
}

// CastVote records a direct vote by voter on the given proposal.
func (e *GovernanceEngine) CastVote(voter common.Address, id uint64, support bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.castVoteLocked(voter, id, support)
}

// CastVoteBySig records a vote on behalf of the signer of a structured-data
// ballot over the engine's domain. Returns the recovered voter.
func (e *GovernanceEngine) CastVoteBySig(id uint64, support bool, sig []byte) (common.Address, error) {
	digest := VoteDigest(e.config.Name, e.config.ChainID, e.config.GovernorAddress, id, support)
	voter, err := e.verifier.Recover(digest, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if voter == (common.Address{}) {
		return common.Address{}, ErrInvalidSignature
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.castVoteLocked(voter, id, support); err != nil {
		return common.Address{}, err
	}
	return voter, nil
}

// castVoteLocked is the single voting routine behind CastVote and
// CastVoteBySig. The vote weight is read at the proposal's start checkpoint,
// so delegation or balance changes after creation never affect a ballot.
func (e *GovernanceEngine) castVoteLocked(voter common.Address, id uint64, support bool) error {
	state, err := e.stateLocked(id)
	if err != nil {
		return err
	}
	if state != StateActive {
		return fmt.Errorf("%w: voting is closed", ErrInvalidState)
	}
	proposal := e.proposals[id]
	if receipt := proposal.receipts[voter]; receipt != nil && receipt.HasVoted {
		return ErrDuplicateVote
	}
	weight, err := e.oracle.WeightAt(voter, proposal.StartBlock)
	if err != nil {
		return fmt.Errorf("weight lookup failed: %w", err)
	}

	tally := proposal.AgainstVotes
	if support {
		tally = proposal.ForVotes
	}
	sum, overflow := new(uint256.Int).AddOverflow(tally, weight)
	if overflow {
		return ErrArithmeticOverflow
	}
	tally.Set(sum)
	proposal.receipts[voter] = &Receipt{
		HasVoted: true,
		Support:  support,
		Votes:    weight.Clone(),
	}

	voteCastMeter.Mark(1)
	e.voteFeed.Send(VoteCastEvent{
		Voter:   voter,
		ID:      id,
		Support: support,
		Weight:  weight.Clone(),
	})
	log.Info("Vote cast", "id", id, "voter", voter, "support", support, "weight", weight)
	return nil
}

// Cancel voids a proposal whose proposer no longer holds the proposal
// threshold. Anyone may call it; it is the safety valve against proposers
// who lose standing after proposing. Executed proposals cannot be canceled.
func (e *GovernanceEngine) Cancel(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.stateLocked(id)
	if err != nil {
		return err
	}
	if state == StateExecuted {
		return fmt.Errorf("%w: cannot cancel an executed proposal", ErrInvalidState)
	}
	proposal := e.proposals[id]

	now := e.checkpoints.Checkpoint()
	prev, err := prevCheckpoint(now)
	if err != nil {
		return err
	}
	weight, err := e.oracle.WeightAt(proposal.Proposer, prev)
	if err != nil {
		return fmt.Errorf("weight lookup failed: %w", err)
	}
	if !weight.Lt(e.config.ProposalThreshold) {
		return fmt.Errorf("%w: proposer still holds the proposal threshold", ErrInsufficientWeight)
	}

	proposal.Canceled = true

	proposalCanceledMeter.Mark(1)
	e.canceledFeed.Send(ProposalCanceledEvent{ID: id})
	log.Info("Proposal canceled", "id", id, "proposer", proposal.Proposer)
	return nil
}

// Execute runs the action batch of a Succeeded proposal. The proposal is
// marked executed before the first call; the first failing action aborts the
// batch with an ExecutionError and the side effects of earlier actions stand.
// The execution event is posted only when every action succeeded. Any value
// attached by the caller is forwarded as zero to each sub-call.
func (e *GovernanceEngine) Execute(id uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.stateLocked(id)
	if err != nil {
		return err
	}
	if state != StateSucceeded {
		return fmt.Errorf("%w: proposal is %s, not Succeeded", ErrInvalidState, state)
	}
	proposal := e.proposals[id]
	proposal.Executed = true

	for i, target := range proposal.Targets {
		data := proposal.Calldatas[i]
		if sig := proposal.Signatures[i]; sig != "" {
			data = append(crypto.Keccak256([]byte(sig))[:4], data...)
		}
		if _, err := e.executor.Invoke(target, uint256.NewInt(0), data); err != nil {
			executionFailedMeter.Mark(1)
			log.Error("Proposal action failed", "id", id, "action", i, "target", target, "err", err)
			return &ExecutionError{ProposalID: id, Index: i, Err: err}
		}
	}

	proposalExecutedMeter.Mark(1)
	e.executedFeed.Send(ProposalExecutedEvent{ID: id})
	log.Info("Proposal executed", "id", id, "actions", len(proposal.Targets))
	return nil
}

// State derives the lifecycle state of a proposal at the current checkpoint.
// Querying an id outside 1..ProposalCount fails with ErrInvalidProposalID.
func (e *GovernanceEngine) State(id uint64) (ProposalState, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateLocked(id)
}

// stateLocked evaluates the state rules in strict precedence order: the
// canceled flag first, then the window checks, then the tally outcome, and
// only after the tallies the executed flag and the lifetime deadline.
// Reordering the tally check after the executed/expired checks changes the
// observable outcomes; callers rely on this exact ordering.
func (e *GovernanceEngine) stateLocked(id uint64) (ProposalState, error) {
	if id == 0 || id > e.proposalCount {
		return StateNull, ErrInvalidProposalID
	}
	proposal := e.proposals[id]
	now := e.checkpoints.Checkpoint()

	switch {
	case proposal.Canceled:
		return StateCanceled, nil
	case now <= proposal.StartBlock:
		return StatePending, nil
	case now <= proposal.EndBlock:
		return StateActive, nil
	case proposal.ForVotes.Cmp(proposal.AgainstVotes) <= 0 || proposal.ForVotes.Lt(e.config.QuorumVotes):
		return StateDefeated, nil
	case proposal.Executed:
		return StateExecuted, nil
	case now >= proposal.LifetimeEnd:
		return StateExpired, nil
	case proposal.ForVotes.Cmp(proposal.AgainstVotes) > 0 && !proposal.ForVotes.Lt(e.config.QuorumVotes):
		return StateSucceeded, nil
	default:
		return StateNull, nil
	}
}

// GetProposal returns a detached copy of a proposal.
func (e *GovernanceEngine) GetProposal(id uint64) (*Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if id == 0 || id > e.proposalCount {
		return nil, ErrInvalidProposalID
	}
	return e.proposals[id].copy(), nil
}

// GetActions returns copies of the ordered action lists of a proposal.
func (e *GovernanceEngine) GetActions(id uint64) (targets []common.Address, signatures []string, calldatas [][]byte, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if id == 0 || id > e.proposalCount {
		return nil, nil, nil, ErrInvalidProposalID
	}
	cpy := e.proposals[id].copy()
	return cpy.Targets, cpy.Signatures, cpy.Calldatas, nil
}

// GetReceipt returns the receipt of voter on the given proposal. A voter who
// never cast a ballot yields a zero receipt.
func (e *GovernanceEngine) GetReceipt(id uint64, voter common.Address) (Receipt, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if id == 0 || id > e.proposalCount {
		return Receipt{}, ErrInvalidProposalID
	}
	receipt := e.proposals[id].receipts[voter]
	if receipt == nil {
		return Receipt{}, nil
	}
	return Receipt{
		HasVoted: receipt.HasVoted,
		Support:  receipt.Support,
		Votes:    receipt.Votes.Clone(),
	}, nil
}

// prevCheckpoint returns checkpoint-1, failing closed at the origin instead
// of wrapping around.
func prevCheckpoint(checkpoint uint64) (uint64, error) {
	if checkpoint == 0 {
		return 0, ErrArithmeticUnderflow
	}
	return checkpoint - 1, nil
}
