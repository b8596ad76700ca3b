package main

import (
	"fmt"
	"os"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/disclosure-cli/internal/resolve"
	"github.com/sells-group/disclosure-cli/pkg/connect"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show the resolved instance storage buckets",
	Long: `Queries the Connect instance storage configuration for call recordings
and chat transcripts and prints the resolved buckets. Useful for triaging
"not configured" resolution failures before a run.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Connect.InstanceID == "" {
			return eris.New("storage: connect.instance_id is not configured (set PDR_CONNECT_INSTANCE_ID)")
		}

		awsConfig, err := awscfg.LoadDefaultConfig(ctx)
		if err != nil {
			return eris.Wrap(err, "storage: load aws config")
		}

		client := connect.NewClient(awsConfig, cfg.Connect.InstanceID)
		buckets, err := resolve.ResolveBuckets(ctx, client)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "call recordings:  %s\n", buckets.CallRecordings)
		fmt.Fprintf(os.Stdout, "chat transcripts: %s\n", buckets.ChatTranscripts)
		if buckets.Shared {
			fmt.Fprintln(os.Stdout, "mode: single bucket")
		} else {
			fmt.Fprintln(os.Stdout, "mode: per-kind buckets")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
}
