// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Errors are grouped by class so a caller can decide how to react:
// an ExistsError or RecordError is never retried by this module, a
// ProcessError may succeed if the caller retries with different input.
package fault
