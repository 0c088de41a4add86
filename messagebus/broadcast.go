// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
	"sync/atomic"
)

// internal constants
const (
	defaultQueueSize = 1000
)

// Message - a command and its binary parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// BroadcastQueue - deliver every message to all current listeners
//
// a message sent when nothing is listening is dropped, as is a
// message for a listener whose channel is full
type BroadcastQueue struct {
	sync.RWMutex

	listeners map[<-chan Message]chan Message
	dropped   atomic.Uint64
}

// NewBroadcastQueue - a queue with no listeners
func NewBroadcastQueue() *BroadcastQueue {
	return &BroadcastQueue{
		listeners: make(map[<-chan Message]chan Message),
	}
}

// Send - queue a message to every listener
func (queue *BroadcastQueue) Send(command string, parameters ...[]byte) {
	m := Message{
		Command:    command,
		Parameters: parameters,
	}

	queue.RLock()
	defer queue.RUnlock()

	for _, c := range queue.listeners {
		select {
		case c <- m:
		default:
			queue.dropped.Add(1)
		}
	}
}

// Chan - add a listener, size <= 0 selects the default buffer size
func (queue *BroadcastQueue) Chan(size int) <-chan Message {
	if size <= 0 {
		size = defaultQueueSize
	}
	c := make(chan Message, size)

	queue.Lock()
	queue.listeners[c] = c
	queue.Unlock()

	return c
}

// Release - stop delivering to a listener and close its channel
func (queue *BroadcastQueue) Release(c <-chan Message) {
	queue.Lock()
	defer queue.Unlock()

	if bc, ok := queue.listeners[c]; ok {
		delete(queue.listeners, c)
		close(bc)
	}
}

// Dropped - count of messages not delivered because a listener was full
func (queue *BroadcastQueue) Dropped() uint64 {
	return queue.dropped.Load()
}
