package channel

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// DeliveryStatus is the observed delivery state for one channel.
type DeliveryStatus string

const (
	StatusPending DeliveryStatus = "pending"
	StatusSuccess DeliveryStatus = "success"
	StatusFailed  DeliveryStatus = "failed"
	StatusSkipped DeliveryStatus = "skipped"
)

// Known reports whether s is one of the recognized delivery statuses.
func (s DeliveryStatus) Known() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// DeliveryResult is one channel's outcome from a distribution attempt.
type DeliveryResult struct {
	Status  DeliveryStatus `json:"status"`
	Message string         `json:"message,omitempty"`
	URL     string         `json:"url,omitempty"`
}

// ResultSet maps channel identifier to delivery result. On the wire it
// may arrive as an object keyed by channel or as a list of entries
// carrying a channel field; both forms decode to the same map.
type ResultSet map[string]DeliveryResult

// resultEntry is the list wire form of a single delivery result.
type resultEntry struct {
	Channel string         `json:"channel"`
	Status  DeliveryStatus `json:"status"`
	Message string         `json:"message,omitempty"`
	URL     string         `json:"url,omitempty"`
}

func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*rs = nil
		return nil
	}

	if trimmed[0] == '[' {
		var entries []resultEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		out := make(ResultSet, len(entries))
		for _, e := range entries {
			if e.Channel == "" {
				continue
			}
			out[e.Channel] = DeliveryResult{Status: e.Status, Message: e.Message, URL: e.URL}
		}
		*rs = out
		return nil
	}

	var m map[string]DeliveryResult
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*rs = ResultSet(m)
	return nil
}

// Synthesize builds the all-success result set the distribution
// workflow assumes when an agent reply carries no explicit results.
func Synthesize(channels []Channel) ResultSet {
	out := make(ResultSet, len(channels))
	for _, ch := range channels {
		out[ch.ID] = DeliveryResult{Status: StatusSuccess}
	}
	return out
}

// Apply updates channel statuses from a distribution result set.
// Each known channel matches by identifier first, then by
// case-insensitive name against the result keys. Channels absent from
// the result set keep their prior status; result entries naming no
// known channel are ignored, so applying a set never creates channels.
// Applying the same set twice yields the same statuses.
func (s *Set) Apply(results ResultSet) {
	if len(results) == 0 {
		return
	}

	// Sorted keys keep the name-match deterministic when several keys
	// fold to the same name.
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, ch := range s.chans {
		if res, ok := results[ch.ID]; ok {
			ch.Status = res.Status
			continue
		}
		for _, k := range keys {
			if strings.EqualFold(k, ch.Name) {
				ch.Status = results[k].Status
				break
			}
		}
	}
}
