// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mocks - gomock doubles for the external collaborators
package mocks

//go:generate mockgen -destination=source.go -package=mocks github.com/bitmark-inc/coinset/coinstate Source
//go:generate mockgen -destination=persister.go -package=mocks github.com/bitmark-inc/coinset/tracker Persister
//go:generate mockgen -destination=submitter.go -package=mocks github.com/bitmark-inc/coinset/wallet Submitter
