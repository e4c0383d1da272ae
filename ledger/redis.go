// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const scanCount = 100

// RedisConfiguration - connection settings for a redis ledger
type RedisConfiguration struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// Redis - ledger on a redis server
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis - connect to a redis server
//
// the connection is lazy, IsAvailable reports reachability
func NewRedis(configuration RedisConfiguration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     configuration.Address,
			Password: configuration.Password,
			DB:       configuration.DB,
		}),
		prefix: configuration.Prefix,
	}
}

// IsAvailable - ping the server
func (r *Redis) IsAvailable(ctx context.Context) bool {
	return nil == r.client.Ping(ctx).Err()
}

// GetData - GET a key
func (r *Redis) GetData(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []byte{}, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// SetData - SET a key with no expiry
func (r *Redis) SetData(ctx context.Context, key string, value []byte) (*Receipt, error) {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); nil != err {
		return nil, err
	}
	return NewReceipt(key, value), nil
}

// Keys - SCAN for every key under the prefix, in ascending order
func (r *Redis) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); nil != err {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Close - release the connection pool
func (r *Redis) Close() error {
	return r.client.Close()
}
