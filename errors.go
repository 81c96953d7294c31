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
	"errors"
	"fmt"
)

// Configuration errors
var (
	ErrInvalidConfiguration = errors.New("invalid governance configuration")
)

// Proposal errors
var (
	ErrInsufficientWeight  = errors.New("voting weight does not satisfy the proposal threshold")
	ErrMalformedProposal   = errors.New("malformed proposal action lists")
	ErrConflictingProposal = errors.New("proposer already has a pending or active proposal")
	ErrInvalidProposalID   = errors.New("proposal id out of range")
)

// Voting errors
var (
	ErrInvalidState     = errors.New("operation not permitted in current proposal state")
	ErrDuplicateVote    = errors.New("voter has already voted on this proposal")
	ErrInvalidSignature = errors.New("invalid ballot signature")
)

// Arithmetic errors
var (
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")
)

// Execution errors
var (
	ErrActionExecutionFailed = errors.New("proposal action execution failed")
)

// ExecutionError reports the first action of a proposal batch that failed to
// execute. Actions before Index have already run and their side effects
// stand; actions after it were never attempted.
type ExecutionError struct {
	ProposalID uint64
	Index      int
	Err        error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("proposal %d: action %d failed: %v", e.ProposalID, e.Index, e.Err)
}

// Unwrap returns the underlying executor error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is reports ErrActionExecutionFailed so callers can match the error kind
// without knowing the concrete type.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrActionExecutionFailed
}
