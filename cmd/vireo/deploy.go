package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vireo-rt/vireo/internal/deploy"
)

func deployCmd() *cobra.Command {
	var (
		bundleDir string
		bucket    string
		prefix    string
		region    string
		purge     bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the built demo bundle to S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(bundleDir, bucket, prefix, region, purge)
		},
	}

	cmd.Flags().StringVarP(&bundleDir, "dir", "d", "./dist", "bundle directory to upload")
	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket to deploy to (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "demo/", "key prefix within the bucket")
	cmd.Flags().StringVar(&region, "region", "us-east-1", "AWS region, for the printed object URL")
	cmd.Flags().BoolVar(&purge, "purge", false, "remove existing objects under prefix before uploading")
	cmd.MarkFlagRequired("bucket")

	return cmd
}

func runDeploy(bundleDir, bucket, prefix, region string, purge bool) error {
	printBanner()
	info("deploy")
	fmt.Println()

	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		errorMsg("loading AWS config: %s", err)
		return err
	}

	client := s3.NewFromConfig(cfg)
	uploader := deploy.NewUploader(client, bucket, prefix)

	if purge {
		info("purging existing objects under %s", prefix)
		if err := uploader.Purge(ctx); err != nil {
			return err
		}
	}

	result, err := uploader.Deploy(ctx, bundleDir)
	if err != nil {
		errorMsg("deploy failed: %s", err)
		return err
	}

	success("uploaded %d files (%d bytes)", len(result.Uploaded), result.Bytes)
	if len(result.Uploaded) > 0 {
		info("example: %s", uploader.BucketURL(region, result.Uploaded[0]))
	}
	return nil
}
