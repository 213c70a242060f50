package registry

import "strings"

// Worker statuses reported by the supervisor. Only StatusOnline is
// significant to the dashboard; anything else counts as not running.
const (
	StatusOnline  = "online"
	StatusUnknown = "N/A"
)

// UnknownName is shown for workers the supervisor reports without a name.
const UnknownName = "N/A"

// channelPrefix marks workers that produce a channel's output.
const channelPrefix = "channel-"

// NoChannel is the channel id of workers that don't serve a channel.
const NoChannel = "?"

// WorkerInfo is one supervised process as reported in a single query.
type WorkerInfo struct {
	Name     string
	Status   string
	CPU      float64 // percent of one core
	Memory   uint64  // resident bytes
	Restarts uint64
}

// Online reports whether the supervisor considers the worker running.
func (w WorkerInfo) Online() bool {
	return w.Status == StatusOnline
}

// IsChannel reports whether the worker is named channel-<id>.
func (w WorkerInfo) IsChannel() bool {
	_, ok := ParseChannelID(w.Name)
	return ok
}

// ChannelID returns <id> for workers named channel-<id>, or "?" otherwise.
func (w WorkerInfo) ChannelID() string {
	if id, ok := ParseChannelID(w.Name); ok {
		return id
	}
	return NoChannel
}

// ParseChannelID extracts <id> from a worker name of the form channel-<id>.
func ParseChannelID(name string) (string, bool) {
	id, ok := strings.CutPrefix(name, channelPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
