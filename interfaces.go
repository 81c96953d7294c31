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

// VotingWeightOracle answers historical voting-weight lookups against the
// reference token. All engine weight reads go through it: the proposal
// threshold check at creation and cancellation time, and the vote weight
// fixed at a proposal's start checkpoint.
//
// Calls are synchronous and fallible; the engine never retries.
type VotingWeightOracle interface {
	// WeightAt returns the voting weight of account at the given checkpoint.
	WeightAt(account common.Address, checkpoint uint64) (*uint256.Int, error)

	// TotalSupply returns the current total token supply.
	TotalSupply() (*uint256.Int, error)
}

// ActionExecutor performs a single external call on behalf of an executed
// proposal. The engine sequences the calls and stops on the first failure;
// it does not model the callee's behavior and there is no rollback across
// calls at this layer.
type ActionExecutor interface {
	// Invoke calls target with the given attached value and calldata and
	// returns the call's output, or an error if the call failed.
	Invoke(target common.Address, value *uint256.Int, data []byte) ([]byte, error)
}

// SignatureVerifier recovers the signer of a structured-data ballot digest.
// A zero recovered address is treated by the engine as an invalid signature.
type SignatureVerifier interface {
	Recover(digest common.Hash, sig []byte) (common.Address, error)
}

// CheckpointSource supplies the current checkpoint (block height) the engine
// evaluates deadlines against. Deadlines are plain data; "timeout" is nothing
// more than querying state at a later checkpoint.
type CheckpointSource interface {
	Checkpoint() uint64
}
