package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/transport"
)

var sendRawFlags struct {
	host      string
	port      int
	scheme    string
	file      string
	timeoutMs int64
	insecure  bool
}

var sendRawCmd = &cobra.Command{
	Use:   "send-raw",
	Short: "Send caller-supplied raw bytes verbatim over TCP/TLS",
	Example: "httpforge send-raw --host example.com --port 443 --scheme https " +
		"--file request.bin",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(sendRawFlags.file)
		if err != nil {
			return fmt.Errorf("read %s: %w", sendRawFlags.file, err)
		}

		opts := transport.DefaultOptions()
		opts.TimeoutMs = sendRawFlags.timeoutMs
		opts.TLS.RejectUnauthorized = !sendRawFlags.insecure

		tr := transport.New()
		defer tr.Close()

		result, err := tr.RawSendRawBytes(context.Background(), sendRawFlags.host, sendRawFlags.port, sendRawFlags.scheme, raw, opts)
		if err != nil {
			return err
		}

		printResult(result)
		return nil
	},
}

func init() {
	sendRawCmd.Flags().StringVar(&sendRawFlags.host, "host", "", "target host")
	sendRawCmd.Flags().IntVar(&sendRawFlags.port, "port", 443, "target port")
	sendRawCmd.Flags().StringVar(&sendRawFlags.scheme, "scheme", "https", "http or https")
	sendRawCmd.Flags().StringVar(&sendRawFlags.file, "file", "", "path to a file of literal request bytes")
	sendRawCmd.Flags().Int64Var(&sendRawFlags.timeoutMs, "timeout-ms", 30000, "overall operation timeout")
	sendRawCmd.Flags().BoolVar(&sendRawFlags.insecure, "insecure", true, "accept unverified TLS certs")
	_ = sendRawCmd.MarkFlagRequired("host")
	_ = sendRawCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(sendRawCmd)
}
