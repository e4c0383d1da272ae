// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dashboard - views over a loaded spot collection
package dashboard

import (
	"strings"

	"github.com/bitmark-inc/parkshare/spot"
)

// AllStatuses - the status filter that matches everything
const AllStatuses = "all"

// Stats - counts shown in the dashboard header
type Stats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

// Filter - spots matching the search text and the status name
//
// the query matches the location token or the owner without regard
// to case; an empty status or "all" matches every status.  An unknown
// status name matches nothing.
func Filter(spots []spot.Spot, query string, status string) []spot.Spot {
	query = strings.ToLower(strings.TrimSpace(query))
	status = strings.ToLower(strings.TrimSpace(status))

	wantStatus := spot.Available
	anyStatus := "" == status || AllStatuses == status
	if !anyStatus {
		s, err := spot.ParseStatus(status)
		if nil != err {
			return []spot.Spot{}
		}
		wantStatus = s
	}

	result := make([]spot.Spot, 0, len(spots))
	for _, s := range spots {
		if !anyStatus && wantStatus != s.Status {
			continue
		}
		if "" != query &&
			!strings.Contains(strings.ToLower(s.Location), query) &&
			!strings.Contains(strings.ToLower(s.Owner), query) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// Summarise - count the spots in each status
func Summarise(spots []spot.Spot) Stats {
	stats := Stats{
		Total: len(spots),
	}
	for _, s := range spots {
		switch s.Status {
		case spot.Available:
			stats.Available += 1
		case spot.Occupied:
			stats.Occupied += 1
		case spot.Maintenance:
			stats.Maintenance += 1
		}
	}
	return stats
}

// IsOwner - compare addresses without regard to case
func IsOwner(account string, owner string) bool {
	if "" == account {
		return false
	}
	return strings.EqualFold(account, owner)
}

// CanRent - true if the account may rent the spot
func CanRent(account string, s *spot.Spot) bool {
	if "" == account || nil == s {
		return false
	}
	return !IsOwner(account, s.Owner) && spot.Available == s.Status
}
