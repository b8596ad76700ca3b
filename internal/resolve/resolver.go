// Package resolve maps contact IDs to the object-store locations holding
// their redacted analysis artifacts.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/disclosure-cli/internal/model"
	"github.com/sells-group/disclosure-cli/pkg/connect"
)

// Per-channel key templates under which Connect stores redacted analysis
// output.
const (
	callRecordingsPrefix  = "Analysis/Voice/Redacted/"
	chatTranscriptsPrefix = "Analysis/Chat/Redacted/"
)

// ResolveBuckets queries instance storage configuration for both resource
// kinds. Called once per run; the result is passed into New rather than
// cached globally.
func ResolveBuckets(ctx context.Context, client connect.Client) (model.BucketConfig, error) {
	recordings, err := client.StorageBucket(ctx, connect.ResourceCallRecordings)
	if err != nil {
		return model.BucketConfig{}, eris.Wrap(err, "resolve: call recordings bucket")
	}
	transcripts, err := client.StorageBucket(ctx, connect.ResourceChatTranscripts)
	if err != nil {
		return model.BucketConfig{}, eris.Wrap(err, "resolve: chat transcripts bucket")
	}

	cfg := model.BucketConfig{
		CallRecordings:  recordings,
		ChatTranscripts: transcripts,
		Shared:          strings.EqualFold(recordings, transcripts),
	}
	zap.L().Info("resolve: storage buckets",
		zap.String("call_recordings", recordings),
		zap.String("chat_transcripts", transcripts),
		zap.Bool("shared", cfg.Shared),
	)
	return cfg, nil
}

// Resolver computes one storage location per contact.
type Resolver struct {
	connect connect.Client
	buckets model.BucketConfig
	loc     *time.Location
}

// New creates a Resolver. The prefix date components are computed in loc;
// nil keeps the process-local zone, which is how the deployed system has
// always partitioned its prefixes.
func New(client connect.Client, buckets model.BucketConfig, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{connect: client, buckets: buckets, loc: loc}
}

// Resolve looks up one contact and derives the bucket and key prefix its
// artifacts live under.
func (r *Resolver) Resolve(ctx context.Context, contactID string) (model.ResolvedLocation, error) {
	contact, err := r.connect.DescribeContact(ctx, contactID)
	if err != nil {
		return model.ResolvedLocation{}, err
	}

	var channel model.Channel
	var template string
	switch strings.ToUpper(contact.Channel) {
	case "VOICE":
		channel = model.ChannelVoice
		template = callRecordingsPrefix
	case "CHAT":
		channel = model.ChannelChat
		template = chatTranscriptsPrefix
	default:
		return model.ResolvedLocation{}, eris.Errorf("resolve: unsupported channel %q", contact.Channel)
	}

	if contact.InitiationTime.IsZero() {
		return model.ResolvedLocation{}, eris.New("resolve: contact has no initiation timestamp")
	}

	ts := contact.InitiationTime.In(r.loc)
	keyPrefix := fmt.Sprintf("%s%d/%02d/%02d/%s", template, ts.Year(), int(ts.Month()), ts.Day(), contactID)

	zap.L().Debug("resolve: contact location",
		zap.String("contact_id", contactID),
		zap.String("resolved_channel", string(channel)),
		zap.String("prefix", keyPrefix),
	)

	return model.ResolvedLocation{
		ContactID: contactID,
		Bucket:    r.buckets.ForChannel(channel),
		KeyPrefix: keyPrefix,
	}, nil
}
