package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/recipes"
	"github.com/nullbyte-labs/httpforge/pkg/transport"
)

var sendPipelinedFlags struct {
	host      string
	port      int
	scheme    string
	paths     []string
	timeoutMs int64
	insecure  bool
}

var sendPipelinedCmd = &cobra.Command{
	Use:   "send-pipelined",
	Short: "Pipeline N requests on one connection and split the concatenated response",
	Example: "httpforge send-pipelined --host example.com --port 443 --scheme https " +
		"--path /a --path /b --path /c",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(sendPipelinedFlags.paths) == 0 {
			return fmt.Errorf("at least one --path is required")
		}

		plans := recipes.PipelineRequests(sendPipelinedFlags.paths)
		for _, p := range plans {
			p.SetConnection(sendPipelinedFlags.host, sendPipelinedFlags.port, sendPipelinedFlags.scheme)
		}

		opts := transport.DefaultOptions()
		opts.TimeoutMs = sendPipelinedFlags.timeoutMs
		opts.TLS.RejectUnauthorized = !sendPipelinedFlags.insecure

		tr := transport.New()
		defer tr.Close()

		results, err := tr.RawSendPipelined(context.Background(), plans, opts)
		if err != nil {
			return err
		}

		for i, result := range results {
			fmt.Printf("=== response %d (%s) ===\n", i, sendPipelinedFlags.paths[i])
			printResult(result)
		}
		return nil
	},
}

func init() {
	sendPipelinedCmd.Flags().StringVar(&sendPipelinedFlags.host, "host", "", "target host")
	sendPipelinedCmd.Flags().IntVar(&sendPipelinedFlags.port, "port", 443, "target port")
	sendPipelinedCmd.Flags().StringVar(&sendPipelinedFlags.scheme, "scheme", "https", "http or https")
	sendPipelinedCmd.Flags().StringArrayVar(&sendPipelinedFlags.paths, "path", nil, "request target, repeatable, one per pipelined request")
	sendPipelinedCmd.Flags().Int64Var(&sendPipelinedFlags.timeoutMs, "timeout-ms", 30000, "overall operation timeout")
	sendPipelinedCmd.Flags().BoolVar(&sendPipelinedFlags.insecure, "insecure", true, "accept unverified TLS certs")
	_ = sendPipelinedCmd.MarkFlagRequired("host")
	rootCmd.AddCommand(sendPipelinedCmd)
}
