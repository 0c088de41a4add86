// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised         = ExistsError("already initialised")
	ErrAlreadyRegistered          = ExistsError("wallet already registered")
	ErrAnnouncementNotFound       = NotFoundError("asserted announcement was not created")
	ErrAssetPending               = ExistsError("asset coin already has a pending transaction")
	ErrCostExceeded               = ProcessError("puzzle evaluation cost exceeded")
	ErrDatabaseIsNotSet           = ProcessError("database is not set")
	ErrDoubleSpend                = ExistsError("coin is spent more than once")
	ErrDuplicateCoin              = ExistsError("different coin already tracked for this launcher")
	ErrEmptyDataDirectory         = InvalidError("data directory is empty")
	ErrInconsistentParent         = RecordError("parent coin state is inconsistent")
	ErrInconsistentSpend          = RecordError("spend does not create the expected child coin")
	ErrInsufficientFunds          = ProcessError("insufficient funds")
	ErrInvalidAddress             = InvalidError("invalid address")
	ErrInvalidAmount              = InvalidError("invalid amount")
	ErrInvalidAssertion           = InvalidError("coin assertion failed")
	ErrInvalidChain               = InvalidError("invalid chain")
	ErrInvalidCondition           = InvalidError("invalid condition")
	ErrInvalidCount               = InvalidError("invalid count")
	ErrInvalidDigest              = InvalidError("invalid digest")
	ErrInvalidInteger             = InvalidError("invalid integer")
	ErrInvalidIPAddress           = InvalidError("invalid IP address")
	ErrInvalidLineageProof        = InvalidError("lineage proof does not match singleton parent")
	ErrInvalidMetadataUpdate      = InvalidError("invalid metadata update")
	ErrInvalidOwnershipTransfer   = InvalidError("invalid ownership transfer")
	ErrInvalidPublicKey           = InvalidError("invalid public key")
	ErrInvalidPuzzleHash          = InvalidError("puzzle reveal does not match coin puzzle hash")
	ErrInvalidSecretKey           = InvalidError("invalid secret key")
	ErrInvalidSignature           = InvalidError("invalid signature")
	ErrInvalidSingletonAmount     = InvalidError("singleton amount must be odd")
	ErrInvalidSolution            = InvalidError("invalid solution")
	ErrLengthMismatch             = LengthError("amounts, puzzle hashes and memos differ in length")
	ErrMissingLineageProof        = RecordError("asset record has no lineage proof")
	ErrMissingParameters          = InvalidError("missing parameters")
	ErrMultipleSingletonChildren  = InvalidError("singleton creates more than one odd coin")
	ErrNoCoinsSelected            = InvalidError("no coins selected")
	ErrNoReachableIP              = NotFoundError("no reachable IP address")
	ErrNotAProgramPair            = InvalidError("program is not a pair")
	ErrNotAnAtom                  = InvalidError("program is not an atom")
	ErrNotFound                   = NotFoundError("not found")
	ErrNotNFT                     = InvalidError("puzzle is not an NFT")
	ErrNotProperList              = InvalidError("program is not a proper list")
	ErrNoAuthority                = NotFoundError("no delegated authority for owner")
	ErrNoConfigurationTable       = InvalidError("configuration file must return a table")
	ErrProgramTooDeep             = LengthError("program nesting is too deep")
	ErrTruncatedProgram           = LengthError("truncated program")
	ErrTruncatedRecord            = LengthError("truncated record")
	ErrUnknownPuzzle              = NotFoundError("unknown puzzle template")
	ErrUnknownMetadataUpdater     = NotFoundError("unknown metadata updater")
	ErrUnknownRecordType          = RecordError("unknown record type")
	ErrUnsignableSpend            = NotFoundError("no local key for required signature")
	ErrValueNotConserved          = InvalidError("outputs and fees exceed inputs")
	ErrWrongNetworkForAddress     = InvalidError("wrong network for address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
