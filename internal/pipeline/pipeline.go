// Package pipeline orchestrates a disclosure run: input manifest → contact
// resolution → artifact enumeration → transcript humanization → presigned
// links → output manifest.
package pipeline

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/disclosure-cli/internal/artifact"
	"github.com/sells-group/disclosure-cli/internal/manifest"
	"github.com/sells-group/disclosure-cli/internal/model"
	"github.com/sells-group/disclosure-cli/internal/resolve"
	"github.com/sells-group/disclosure-cli/internal/transcript"
	"github.com/sells-group/disclosure-cli/pkg/connect"
	"github.com/sells-group/disclosure-cli/pkg/objectstore"
)

// Params wires a Pipeline.
type Params struct {
	Store             objectstore.Client
	Connect           connect.Client
	Humanizer         *transcript.Humanizer
	DestinationBucket string
	DestinationPrefix string
	PresignExpiry     time.Duration
	MaxInputLines     int

	// Zone controls prefix date computation; nil keeps the process-local
	// zone. Now is injectable for output key naming in tests.
	Zone *time.Location
	Now  func() time.Time
}

// Pipeline executes disclosure runs. Contacts are processed strictly
// sequentially: no parallelism across contacts, artifacts, or listing
// pages. Progress order and pagination order stay reproducible, and a
// future parallel version would need to flag that behavior change.
type Pipeline struct {
	store      objectstore.Client
	connect    connect.Client
	humanizer  *transcript.Humanizer
	destBucket string
	destPrefix string
	expiry     time.Duration
	maxLines   int
	zone       *time.Location
	now        func() time.Time
}

// New creates a Pipeline.
func New(p Params) *Pipeline {
	if p.MaxInputLines <= 0 {
		p.MaxInputLines = 1000000
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Pipeline{
		store:      p.Store,
		connect:    p.Connect,
		humanizer:  p.Humanizer,
		destBucket: p.DestinationBucket,
		destPrefix: p.DestinationPrefix,
		expiry:     p.PresignExpiry,
		maxLines:   p.MaxInputLines,
		zone:       p.Zone,
		now:        p.Now,
	}
}

// Result summarizes a completed run. Partial coverage shows up in Skipped
// and in the logs; the output manifest itself carries no per-contact
// status.
type Result struct {
	RunID        string
	Contacts     int
	Skipped      int
	Rows         int
	OutputBucket string
	OutputKey    string
}

// Run processes the input manifest at s3://sourceBucket/sourceKey and
// writes the output manifest to the destination bucket. Per-contact and
// per-object failures are logged and skipped; only an unreadable input
// manifest or an unwritable output manifest fail the run.
func (p *Pipeline) Run(ctx context.Context, sourceBucket, sourceKey string) (*Result, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("pipeline: run starting",
		zap.String("source_bucket", sourceBucket),
		zap.String("source_key", sourceKey),
	)

	ids, err := p.readManifest(ctx, sourceBucket, sourceKey)
	if err != nil {
		return nil, &InputError{Bucket: sourceBucket, Key: sourceKey, Err: err}
	}
	log.Info("pipeline: input manifest parsed", zap.Int("contacts", len(ids)))

	var rows model.RowSet
	skipped := 0

	buckets, err := resolve.ResolveBuckets(ctx, p.connect)
	if err != nil {
		// Without bucket resolution no contact can be located. Every
		// contact is skipped, and the (empty) manifest is still written so
		// the caller gets the coarse success signal the contract promises.
		log.Error("pipeline: storage bucket resolution failed, skipping all contacts", zap.Error(err))
		skipped = len(ids)
	} else {
		resolver := resolve.New(p.connect, buckets, p.zone)
		for i, id := range ids {
			log.Info("pipeline: processing contact",
				zap.String("contact_id", id),
				zap.Int("position", i+1),
				zap.Int("total", len(ids)),
			)
			if err := p.processContact(ctx, log, resolver, id, &rows); err != nil {
				skipped++
				log.Error("pipeline: contact skipped", zap.String("contact_id", id), zap.Error(err))
			}
		}
	}

	outKey := manifest.OutputKey(p.destPrefix, p.now())
	if err := p.writeManifest(ctx, outKey, rows.Rows()); err != nil {
		return nil, &OutputError{Bucket: p.destBucket, Key: outKey, Err: err}
	}

	result := &Result{
		RunID:        runID,
		Contacts:     len(ids),
		Skipped:      skipped,
		Rows:         rows.Len(),
		OutputBucket: p.destBucket,
		OutputKey:    outKey,
	}
	log.Info("pipeline: run complete",
		zap.Int("contacts", result.Contacts),
		zap.Int("skipped", result.Skipped),
		zap.Int("rows", result.Rows),
		zap.String("output_key", result.OutputKey),
	)
	return result, nil
}

// processContact resolves, enumerates, and discloses one contact's
// artifacts. A returned error means the whole contact was skipped.
func (p *Pipeline) processContact(ctx context.Context, log *zap.Logger, resolver *resolve.Resolver, contactID string, rows *model.RowSet) error {
	loc, err := resolver.Resolve(ctx, contactID)
	if err != nil {
		return &ResolutionError{ContactID: contactID, Err: err}
	}

	artifacts, err := artifact.Enumerate(ctx, p.store, loc.Bucket, loc.KeyPrefix)
	if err != nil {
		return &EnumerationError{ContactID: contactID, Bucket: loc.Bucket, Prefix: loc.KeyPrefix, Err: err}
	}
	log.Info("pipeline: artifacts enumerated",
		zap.String("contact_id", contactID),
		zap.String("prefix", loc.KeyPrefix),
		zap.Int("artifacts", len(artifacts)),
	)

	for _, art := range artifacts {
		p.discloseArtifact(ctx, log, contactID, loc.Bucket, art, rows)
	}
	return nil
}

// discloseArtifact issues one manifest row for a discovered artifact.
// Transcripts are humanized first, falling back to the raw artifact on any
// humanization failure; a transcript is never dropped because the transform
// failed. A signing failure omits the row.
func (p *Pipeline) discloseArtifact(ctx context.Context, log *zap.Logger, contactID, bucket string, art model.Artifact, rows *model.RowSet) {
	key := art.Key
	if art.Type == model.FileTypeTranscript {
		outKey, err := p.humanizer.Humanize(ctx, bucket, art.Key)
		if err != nil {
			herr := &HumanizationError{Bucket: bucket, Key: art.Key, Err: err}
			log.Warn("pipeline: humanization failed, disclosing raw transcript",
				zap.String("contact_id", contactID),
				zap.Error(herr),
			)
		} else {
			key = outKey
		}
	}

	link, err := p.store.Presign(ctx, bucket, key, p.expiry)
	if err != nil {
		serr := &SignError{Bucket: bucket, Key: key, Err: err}
		log.Error("pipeline: link signing failed, row omitted",
			zap.String("contact_id", contactID),
			zap.Error(serr),
		)
		return
	}

	rows.Add(model.Row{
		ContactID: contactID,
		Channel:   model.ChannelFromKey(art.Key),
		FileType:  art.Type,
		URL:       link,
	})
}

func (p *Pipeline) readManifest(ctx context.Context, bucket, key string) ([]string, error) {
	// Keys from S3 event payloads arrive percent-encoded.
	decoded, err := url.QueryUnescape(key)
	if err != nil {
		return nil, err
	}

	body, err := p.store.Get(ctx, bucket, decoded)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	return manifest.ReadContactIDs(body, p.maxLines)
}

func (p *Pipeline) writeManifest(ctx context.Context, key string, rows []model.Row) error {
	var buf bytes.Buffer
	if err := manifest.WriteRows(&buf, rows); err != nil {
		return err
	}
	return p.store.Put(ctx, p.destBucket, key, "text/csv", buf.Bytes())
}
