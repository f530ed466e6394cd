package main

import (
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/lattice-ui/lattice/internal/demo"
	"github.com/lattice-ui/lattice/pkg/publish"
)

func exportCmd() *cobra.Command {
	var bucket, prefix, region string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish the demo pages to S3 as static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if bucket == "" {
				bucket = cfg.Publish.Bucket
			}
			if prefix == "" {
				prefix = cfg.Publish.Prefix
			}
			if region == "" {
				region = cfg.Publish.Region
			}
			if bucket == "" {
				return fmt.Errorf("lattice: export needs a bucket (--bucket or publish.bucket)")
			}

			logger := cfg.Log.Logger()
			slog.SetDefault(logger)

			ctx := cmd.Context()
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
			if err != nil {
				return fmt.Errorf("lattice: load aws config: %w", err)
			}

			pub, err := publish.New(publish.Config{
				Client: s3.NewFromConfig(awsCfg),
				Bucket: bucket,
				Prefix: prefix,
				Title:  cfg.Server.Title,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			return pub.PublishSite(ctx, demo.StaticPages())
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "destination bucket (overrides config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix (overrides config)")
	cmd.Flags().StringVar(&region, "region", "", "aws region (overrides config)")

	return cmd
}
