// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/coinset/chain"
)

// environment variable names
const (
	envPrefix        = "COINSET_"
	envChain         = envPrefix + "CHAIN"
	envLogLevel      = envPrefix + "LOG_LEVEL"
	envNodeHost      = envPrefix + "NODE_HOST"
	envNodePort      = envPrefix + "NODE_PORT"
	envPeerCount     = envPrefix + "PEER_COUNT"
	envTrustedNodeId = envPrefix + "TRUSTED_NODE_ID"
	envTrustedCert   = envPrefix + "TRUSTED_NODE_CRT"
	envWalletPrefix  = envPrefix + "WALLET_"
)

// ApplyEnvironment - override configuration from KEY=value strings
//
// COINSET_WALLET_<KEY> sets the wallet field tagged with the lower case
// key, or an entry in the wallet options when no field has that tag
func ApplyEnvironment(options *Configuration, environ []string) error {
	env := make(map[string]string, len(environ))
	for _, e := range environ {
		k, v, ok := strings.Cut(e, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			env[k] = v
		}
	}

	if v, ok := env[envChain]; ok && "" != v {
		options.Chain = strings.ToLower(v)
	}

	if v, ok := env[envLogLevel]; ok && "" != v {
		if nil == options.Logging.Levels {
			options.Logging.Levels = make(map[string]string)
		}
		options.Logging.Levels[logger.DefaultTag] = strings.ToLower(v)
	}

	if host, ok := env[envNodeHost]; ok && "" != host {
		port := 0
		if p, ok := env[envNodePort]; ok {
			n, err := strconv.Atoi(p)
			if nil != err {
				return fmt.Errorf("%s: %q is not a port number", envNodePort, p)
			}
			port = n
		} else if p, err := chain.Get(options.Chain); nil == err {
			port = int(p.DefaultPort)
		}
		node := NodeType{Host: host, Port: port}
		if 0 == len(options.Wallet.FullNodePeers) {
			options.Wallet.FullNodePeers = []NodeType{node}
		} else {
			options.Wallet.FullNodePeers[0] = node
		}
	}

	trustedId := defaultTrustedNodeId
	if v, ok := env[envTrustedNodeId]; ok && "" != v {
		trustedId = v
	}
	if nil == options.Wallet.TrustedPeers {
		options.Wallet.TrustedPeers = make(map[string]string)
	}
	if v, ok := env[envTrustedCert]; ok && "" != v {
		options.Wallet.TrustedPeers[trustedId] = v
	} else if _, ok := options.Wallet.TrustedPeers[trustedId]; !ok {
		options.Wallet.TrustedPeers[trustedId] = defaultTrustedCert
	}

	if v, ok := env[envPeerCount]; ok {
		n, err := strconv.Atoi(v)
		if nil != err {
			return fmt.Errorf("%s: %q is not a number", envPeerCount, v)
		}
		options.Wallet.TargetPeerCount = n
	}

	for k, v := range env {
		if !strings.HasPrefix(k, envWalletPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(k, envWalletPrefix))
		if err := setWalletItem(&options.Wallet, name, v); nil != err {
			return fmt.Errorf("%s: %s", k, err)
		}
	}
	return nil
}

// set a tagged scalar field of the wallet or record an option
func setWalletItem(wallet *WalletType, name string, value string) error {
	walletType := reflect.TypeOf(*wallet)
	walletValue := reflect.ValueOf(wallet).Elem()

	for i := 0; i < walletType.NumField(); i += 1 {
		if name != walletType.Field(i).Tag.Get("gluamapper") {
			continue
		}
		field := walletValue.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if nil != err {
				return err
			}
			field.SetBool(b)
		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(value, 10, 64)
			if nil != err {
				return err
			}
			field.SetInt(n)
		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(value, 10, 64)
			if nil != err {
				return err
			}
			field.SetUint(n)
		default:
			return fmt.Errorf("wallet item: %q cannot be set from the environment", name)
		}
		return nil
	}

	if nil == wallet.Options {
		wallet.Options = make(map[string]string)
	}
	wallet.Options[name] = value
	return nil
}
