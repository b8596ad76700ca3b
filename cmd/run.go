package main

import (
	"context"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/disclosure-cli/internal/pipeline"
	"github.com/sells-group/disclosure-cli/internal/transcript"
	"github.com/sells-group/disclosure-cli/pkg/anthropic"
	"github.com/sells-group/disclosure-cli/pkg/connect"
	"github.com/sells-group/disclosure-cli/pkg/objectstore"
)

var (
	runSourceBucket string
	runSourceKey    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one input manifest into a disclosure manifest",
	Long: `Reads the contact-ID manifest at the given bucket/key, resolves each
contact's artifacts, humanizes transcripts, and writes the presigned-link
manifest to the destination bucket.

Contacts are processed strictly sequentially; per-contact failures are
logged and skipped. The command exits non-zero only when the input manifest
cannot be read or the output manifest cannot be written.

Example:
  disclosure-cli run --bucket pdr-source --key uploads/contacts.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Connect.InstanceID == "" {
			return eris.New("run: connect.instance_id is not configured (set PDR_CONNECT_INSTANCE_ID)")
		}
		if cfg.Destination.Bucket == "" {
			return eris.New("run: destination.bucket is not configured (set PDR_DESTINATION_BUCKET)")
		}

		p, err := buildPipeline(ctx)
		if err != nil {
			return eris.Wrap(err, "run: init pipeline")
		}

		result, err := p.Run(ctx, runSourceBucket, runSourceKey)
		if err != nil {
			zap.L().Error("run: failed", zap.Error(err))
			return err
		}

		zap.L().Info("run: disclosure manifest written",
			zap.String("run_id", result.RunID),
			zap.Int("contacts", result.Contacts),
			zap.Int("skipped", result.Skipped),
			zap.Int("rows", result.Rows),
			zap.String("output", "s3://"+result.OutputBucket+"/"+result.OutputKey),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runSourceBucket, "bucket", "", "bucket holding the input manifest (required)")
	runCmd.Flags().StringVar(&runSourceKey, "key", "", "object key of the input manifest (required)")
	_ = runCmd.MarkFlagRequired("bucket")
	_ = runCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(runCmd)
}

// buildPipeline wires the AWS clients and the pipeline from config.
func buildPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	awsConfig, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "load aws config")
	}

	store := objectstore.NewClient(awsConfig, cfg.AWS.AccountID)
	conn := connect.NewClient(awsConfig, cfg.Connect.InstanceID)
	ai := anthropic.NewBedrockClient(ctx, cfg.Bedrock.Timeout())
	humanizer := transcript.NewHumanizer(store, ai, cfg.Bedrock.ModelID, cfg.Bedrock.MaxTokens)

	return pipeline.New(pipeline.Params{
		Store:             store,
		Connect:           conn,
		Humanizer:         humanizer,
		DestinationBucket: cfg.Destination.Bucket,
		DestinationPrefix: cfg.Destination.Prefix,
		PresignExpiry:     cfg.Presign.Expiry(),
		MaxInputLines:     cfg.Manifest.MaxLines,
	}), nil
}
