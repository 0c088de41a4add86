// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coinstate

import (
	"context"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/coinset/coin"
	"github.com/bitmark-inc/coinset/merkle"
)

const (
	cleanupInterval = 10 * time.Minute
)

// Cache - Source wrapper that remembers answers that can no longer change
//
// unspent states are always fetched since they change when spent
type Cache struct {
	log    *logger.L
	source Source
	states *cache.Cache
	spends *cache.Cache
}

// NewCache - cache the answers of source for expiration
func NewCache(log *logger.L, source Source, expiration time.Duration) *Cache {
	return &Cache{
		log:    log,
		source: source,
		states: cache.New(expiration, cleanupInterval),
		spends: cache.New(expiration, cleanupInterval),
	}
}

// CoinStates - cached states followed by whatever the source returns for the rest
func (c *Cache) CoinStates(ctx context.Context, ids []merkle.Digest) ([]coin.CoinState, error) {
	result := make([]coin.CoinState, 0, len(ids))
	missing := make([]merkle.Digest, 0, len(ids))
	for _, id := range ids {
		if s, found := c.states.Get(id.String()); found {
			result = append(result, s.(coin.CoinState))
			continue
		}
		missing = append(missing, id)
	}
	if 0 == len(missing) {
		return result, nil
	}

	c.log.Debugf("coin states: cached: %d  fetch: %d", len(result), len(missing))

	fetched, err := c.source.CoinStates(ctx, missing)
	if nil != err {
		return nil, err
	}
	for _, s := range fetched {
		if s.IsSpent() {
			c.states.Set(s.Coin.Id().String(), s, cache.DefaultExpiration)
		}
		result = append(result, s)
	}
	return result, nil
}

// PuzzleSolution - cached spend of parent at height
func (c *Cache) PuzzleSolution(ctx context.Context, height uint32, parent coin.Coin) (fn.Option[coin.CoinSpend], error) {
	key := parent.Id().String() + ":" + strconv.FormatUint(uint64(height), 10)
	if s, found := c.spends.Get(key); found {
		return fn.Some(s.(coin.CoinSpend)), nil
	}

	spend, err := c.source.PuzzleSolution(ctx, height, parent)
	if nil != err {
		return fn.None[coin.CoinSpend](), err
	}
	spend.WhenSome(func(s coin.CoinSpend) {
		c.spends.Set(key, s, cache.DefaultExpiration)
	})
	return spend, nil
}

// Flush - forget everything, e.g. after a chain reorganisation
func (c *Cache) Flush() {
	c.states.Flush()
	c.spends.Flush()
}
