// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"context"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/coinstate"
	"github.com/bitmark-inc/coinset/fault"
	"github.com/bitmark-inc/coinset/merkle"
	"github.com/bitmark-inc/coinset/spendbundle"
	"github.com/bitmark-inc/coinset/util"
)

// TagType - kind of wallet transaction
type TagType uint64

// transaction kinds, encoded as a varint64 at the start of a packed record
const (
	NullTag           = TagType(iota)
	MintTag           = TagType(iota) // new NFT
	TransferTag       = TagType(iota) // NFT to another puzzle hash
	MetadataUpdateTag = TagType(iota) // URI added to NFT metadata
	OwnerUpdateTag    = TagType(iota) // NFT owner DID set or cleared
	FeeOnlyTag        = TagType(iota) // arbitrary conditions on NFT spends

	// this item must be last
	InvalidTag = TagType(iota)
)

// String - name of the transaction kind
func (t TagType) String() string {
	switch t {
	case MintTag:
		return "mint"
	case TransferTag:
		return "transfer"
	case MetadataUpdateTag:
		return "metadata update"
	case OwnerUpdateTag:
		return "owner update"
	case FeeOnlyTag:
		return "signed spend"
	default:
		return "*unknown*"
	}
}

// TransactionRecord - a submitted bundle and what it was for
type TransactionRecord struct {
	Type        TagType
	Fee         uint64
	Created     uint64 // unix seconds
	LauncherIds []merkle.Digest
	Bundle      *spendbundle.SpendBundle
}

// PackedTransaction - binary form of a transaction record
type PackedTransaction []byte

// Id - the bundle id
func (r TransactionRecord) Id() merkle.Digest {
	return r.Bundle.Id()
}

// Pack - varint(type) ‖ varint(fee) ‖ varint(created) ‖ varint(count) ‖ launcher ids ‖ bundle
func (r TransactionRecord) Pack() PackedTransaction {
	buffer := util.ToVarint64(uint64(r.Type))
	buffer = util.AppendVarint64(buffer, r.Fee)
	buffer = util.AppendVarint64(buffer, r.Created)
	buffer = util.AppendVarint64(buffer, uint64(len(r.LauncherIds)))
	for _, id := range r.LauncherIds {
		buffer = append(buffer, id[:]...)
	}
	return append(buffer, r.Bundle.Pack()...)
}

// Unpack - decode a packed transaction record
func (packed PackedTransaction) Unpack() (TransactionRecord, error) {
	r := TransactionRecord{}

	tag, n := util.FromVarint64(packed)
	if 0 == n {
		return r, fault.ErrTruncatedRecord
	}
	if NullTag == TagType(tag) || tag >= uint64(InvalidTag) {
		return r, fault.ErrUnknownRecordType
	}
	r.Type = TagType(tag)

	fee, used := util.FromVarint64(packed[n:])
	if 0 == used {
		return r, fault.ErrTruncatedRecord
	}
	r.Fee = fee
	n += used

	created, used := util.FromVarint64(packed[n:])
	if 0 == used {
		return r, fault.ErrTruncatedRecord
	}
	r.Created = created
	n += used

	count, used := util.FromVarint64(packed[n:])
	if 0 == used {
		return r, fault.ErrTruncatedRecord
	}
	n += used
	if count > uint64(len(packed)-n)/merkle.DigestLength {
		return r, fault.ErrTruncatedRecord
	}
	r.LauncherIds = make([]merkle.Digest, count)
	for i := range r.LauncherIds {
		n += copy(r.LauncherIds[i][:], packed[n:])
	}

	b, err := spendbundle.Unpack(packed[n:])
	if nil != err {
		return r, err
	}
	r.Bundle = b
	return r, nil
}

// Submitter - sends a transaction to the network
type Submitter interface {
	PushTransaction(ctx context.Context, record TransactionRecord) error
}

// LedgerSubmitter - submits to a local ledger and reports the coin
// states each accepted block touched
type LedgerSubmitter struct {
	ledger  *coinstate.Ledger
	updated func(ctx context.Context, states []coin.CoinState) error
}

// NewLedgerSubmitter - submitter for a local ledger, updated may be nil
func NewLedgerSubmitter(ledger *coinstate.Ledger, updated func(ctx context.Context, states []coin.CoinState) error) *LedgerSubmitter {
	return &LedgerSubmitter{
		ledger:  ledger,
		updated: updated,
	}
}

// PushTransaction - apply the bundle as a new block
func (s *LedgerSubmitter) PushTransaction(ctx context.Context, record TransactionRecord) error {
	touched, err := s.ledger.Apply(ctx, record.Bundle)
	if nil != err {
		return err
	}
	if nil == s.updated {
		return nil
	}
	return s.updated(ctx, touched)
}
