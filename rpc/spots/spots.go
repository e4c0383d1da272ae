// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package spots - JSON RPC service over the spot store
package spots

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/parkshare/dashboard"
	"github.com/bitmark-inc/parkshare/fault"
	"github.com/bitmark-inc/parkshare/rpc/ratelimit"
	"github.com/bitmark-inc/parkshare/spot"
	"github.com/bitmark-inc/parkshare/tracker"
)

const (
	rateLimitSpots = 100
	rateBurstSpots = 50

	// upper bound on one write call including the rental delay
	requestTimeout = 2 * time.Minute
)

//go:generate mockgen -destination=../mocks/store.go -package=mocks github.com/bitmark-inc/parkshare/rpc/spots Store

// Store - operations the service needs
type Store interface {
	Spots() []spot.Spot
	Spot(id string) (*spot.Spot, error)
	RevealLocation(sp *spot.Spot) (string, error)
	Refresh(ctx context.Context) bool
	Create(ctx context.Context, input spot.Input) (*spot.Spot, error)
	Rent(ctx context.Context, id string, renter string) (*spot.Spot, error)
	Status() tracker.Status
	Busy() bool
}

// Spots - type for RPC calls
type Spots struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   Store
}

// New - create the service
func New(log *logger.L, store Store) *Spots {
	return &Spots{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitSpots, rateBurstSpots),
		Store:   store,
	}
}

// ---

// ListArguments - filter for List
type ListArguments struct {
	Query  string `json:"query"`
	Status string `json:"status"`
}

// ListReply - filtered spots and statistics over the whole collection
type ListReply struct {
	Spots []spot.Spot     `json:"spots"`
	Stats dashboard.Stats `json:"stats"`
	Busy  bool            `json:"busy"`
}

// List - the spots currently loaded
func (s *Spots) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		arguments = &ListArguments{}
	}

	all := s.Store.Spots()
	reply.Spots = dashboard.Filter(all, arguments.Query, arguments.Status)
	reply.Stats = dashboard.Summarise(all)
	reply.Busy = s.Store.Busy()
	return nil
}

// ---

// GetArguments - id of one spot
type GetArguments struct {
	Id     string `json:"id"`
	Reveal bool   `json:"reveal"`
}

// GetReply - one spot, with its opened location when revealed
type GetReply struct {
	Spot     *spot.Spot `json:"spot"`
	Location string     `json:"location,omitempty"`
}

// Get - one spot from the loaded collection
func (s *Spots) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.Id {
		return fault.ErrMissingSpotId
	}

	sp, err := s.Store.Spot(arguments.Id)
	if nil != err {
		return err
	}
	reply.Spot = sp

	if arguments.Reveal {
		location, err := s.Store.RevealLocation(sp)
		if nil != err {
			s.Log.Warnf("reveal spot: %q  error: %s", sp.Id, err)
			return err
		}
		reply.Location = location
	}
	return nil
}

// ---

// RefreshArguments - no arguments
type RefreshArguments struct{}

// RefreshReply - whether a reload ran
type RefreshReply struct {
	Started bool            `json:"started"`
	Spots   []spot.Spot     `json:"spots"`
	Stats   dashboard.Stats `json:"stats"`
}

// Refresh - reload from the ledger unless a reload is running
func (s *Spots) Refresh(arguments *RefreshArguments, reply *RefreshReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	reply.Started = s.Store.Refresh(ctx)
	reply.Spots = s.Store.Spots()
	reply.Stats = dashboard.Summarise(reply.Spots)
	return nil
}

// ---

// CreateReply - the new spot
type CreateReply struct {
	Spot *spot.Spot `json:"spot"`
}

// Create - list a new spot
func (s *Spots) Create(arguments *spot.Input, reply *CreateReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sp, err := s.Store.Create(ctx, *arguments)
	if nil != err {
		s.Log.Warnf("create error: %s", err)
		return err
	}

	s.Log.Infof("created: %q  owner: %s", sp.Id, sp.Owner)
	reply.Spot = sp
	return nil
}

// ---

// RentArguments - spot and renter
type RentArguments struct {
	Id     string `json:"id"`
	Renter string `json:"renter"`
}

// RentReply - the rented spot
type RentReply struct {
	Spot *spot.Spot `json:"spot"`
}

// Rent - mark a spot occupied
func (s *Spots) Rent(arguments *RentArguments, reply *RentReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sp, err := s.Store.Rent(ctx, arguments.Id, arguments.Renter)
	if nil != err {
		s.Log.Warnf("rent: %q  error: %s", arguments.Id, err)
		return err
	}

	s.Log.Infof("rented: %q  renter: %s", sp.Id, arguments.Renter)
	reply.Spot = sp
	return nil
}

// ---

// StatusArguments - no arguments
type StatusArguments struct{}

// StatusReply - the transaction status slot
type StatusReply struct {
	Status tracker.Status `json:"status"`
}

// Status - what the last operation is doing
func (s *Spots) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(s.Limiter); nil != err {
		return err
	}

	reply.Status = s.Store.Status()
	return nil
}
