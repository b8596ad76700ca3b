// Package model defines the domain types shared across the disclosure
// pipeline: contacts, resolved storage locations, discovered artifacts,
// and output manifest rows.
package model

import (
	"strings"
	"time"
)

// Channel is the contact channel as reported on a manifest row.
type Channel string

const (
	ChannelVoice Channel = "VOICE"
	ChannelChat  Channel = "CHAT"
)

// ChannelFromKey derives the row channel from an object key. Keys under the
// voice analysis hierarchy contain "Voice"; everything else is reported as
// CHAT. This intentionally re-derives the channel from the key rather than
// reusing the channel returned by DescribeContact — the two can disagree for
// ambiguous keys, and the key-derived value is the documented output.
func ChannelFromKey(key string) Channel {
	if strings.Contains(key, "Voice") {
		return ChannelVoice
	}
	return ChannelChat
}

// FileType classifies a discovered artifact.
type FileType string

const (
	FileTypeRecording  FileType = "RECORDING"
	FileTypeTranscript FileType = "TRANSCRIPT"
)

// Classify maps an object key to a file type by suffix. Objects that are
// neither recordings nor raw transcripts are excluded from the manifest;
// for those Classify returns ok=false.
func Classify(key string) (FileType, bool) {
	switch {
	case strings.HasSuffix(key, ".wav"):
		return FileTypeRecording, true
	case strings.HasSuffix(key, ".json"):
		return FileTypeTranscript, true
	default:
		return "", false
	}
}

// Contact holds the subset of DescribeContact output the resolver needs.
type Contact struct {
	ID             string
	Channel        Channel
	InitiationTime time.Time
}

// ResolvedLocation scopes one contact's artifacts to a bucket and key
// prefix. It is computed once per contact and used for a single
// enumeration.
type ResolvedLocation struct {
	ContactID string
	Bucket    string
	KeyPrefix string
}

// Artifact is one recognized object discovered under a resolved prefix.
type Artifact struct {
	Key  string
	Size int64
	Type FileType
}

// BucketConfig holds the per-run storage bucket resolution. Shared is true
// when call recordings and chat transcripts are configured into the same
// bucket; the distinction only matters for logging, since ForChannel picks
// by channel either way.
type BucketConfig struct {
	CallRecordings  string
	ChatTranscripts string
	Shared          bool
}

// ForChannel returns the bucket holding artifacts for the given channel.
func (b BucketConfig) ForChannel(ch Channel) string {
	if ch == ChannelVoice {
		return b.CallRecordings
	}
	return b.ChatTranscripts
}
