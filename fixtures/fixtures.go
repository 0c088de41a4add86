// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup
package fixtures

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/coinset/signature"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// AdditionalData - network binding used by tests
var AdditionalData = []byte("coinset testing network")

// SetupTestLogger - log to a scratch directory, critical messages only
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0o700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// Seed - deterministic seed for a test wallet
func Seed(n byte) []byte {
	return bytes.Repeat([]byte{n}, signature.SeedSize)
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
