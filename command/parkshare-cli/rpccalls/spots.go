// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/parkshare/rpc/spots"
	"github.com/bitmark-inc/parkshare/spot"
	"github.com/bitmark-inc/parkshare/tracker"
)

// ListSpots - the filtered collection with its counts
func (client *Client) ListSpots(query string, status string) (*spots.ListReply, error) {
	arguments := spots.ListArguments{
		Query:  query,
		Status: status,
	}
	client.printJson("List Request", arguments)

	var reply spots.ListReply
	if err := client.client.Call("Spots.List", arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("List Reply", reply)

	return &reply, nil
}

// GetSpot - one spot from the loaded collection, optionally with its
// opened location
func (client *Client) GetSpot(id string, reveal bool) (*spots.GetReply, error) {
	arguments := spots.GetArguments{
		Id:     id,
		Reveal: reveal,
	}
	client.printJson("Get Request", arguments)

	var reply spots.GetReply
	if err := client.client.Call("Spots.Get", arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Get Reply", reply)

	return &reply, nil
}

// CreateSpot - list a new spot
func (client *Client) CreateSpot(input *spot.Input) (*spot.Spot, error) {
	client.printJson("Create Request", input)

	var reply spots.CreateReply
	if err := client.client.Call("Spots.Create", input, &reply); nil != err {
		return nil, err
	}

	client.printJson("Create Reply", reply)

	return reply.Spot, nil
}

// RentSpot - mark a spot as occupied
func (client *Client) RentSpot(id string, renter string) (*spot.Spot, error) {
	arguments := spots.RentArguments{
		Id:     id,
		Renter: renter,
	}
	client.printJson("Rent Request", arguments)

	var reply spots.RentReply
	if err := client.client.Call("Spots.Rent", arguments, &reply); nil != err {
		return nil, err
	}

	client.printJson("Rent Reply", reply)

	return reply.Spot, nil
}

// Refresh - ask the daemon to reload from the ledger
func (client *Client) Refresh() (*spots.RefreshReply, error) {
	var reply spots.RefreshReply
	if err := client.client.Call("Spots.Refresh", spots.RefreshArguments{}, &reply); nil != err {
		return nil, err
	}

	client.printJson("Refresh Reply", reply)

	return &reply, nil
}

// GetStatus - the transaction status slot
func (client *Client) GetStatus() (*tracker.Status, error) {
	var reply spots.StatusReply
	if err := client.client.Call("Spots.Status", spots.StatusArguments{}, &reply); nil != err {
		return nil, err
	}

	client.printJson("Status Reply", reply)

	return &reply.Status, nil
}
