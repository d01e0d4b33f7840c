package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullbyte-labs/httpforge/pkg/encoder"
)

var encodeFlags struct {
	kind  string
	depth int
}

var encodeCmd = &cobra.Command{
	Use:   "encode KIND VALUE",
	Short: "Apply one named byte-encoding transformation, or list path-traversal variants",
	Example: "httpforge encode url \"' OR 1=1\"\nhttpforge encode path-traversal --depth 3",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]

		if kind == "path-traversal" {
			for _, v := range encoder.PathTraversalVariants(encodeFlags.depth) {
				fmt.Println(v)
			}
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("encode %s requires a VALUE argument", kind)
		}
		value := args[1]

		switch kind {
		case "url":
			fmt.Println(encoder.URLEncode(value))
		case "double-url":
			fmt.Println(encoder.DoubleURLEncode(value))
		case "url-all":
			fmt.Println(encoder.URLEncodeAll(value))
		case "unicode":
			fmt.Println(encoder.UnicodeEscape(value))
		case "hex":
			fmt.Println(encoder.HexEncode(value))
		case "octal":
			fmt.Println(encoder.OctalEncode(value))
		case "html-entity":
			fmt.Println(encoder.HTMLEntityEncode(value))
		case "base64":
			fmt.Println(encoder.Base64Encode(value))
		case "overlong-utf8":
			fmt.Println(encoder.OverlongUTF8Encode(value))
		case "mixed":
			fmt.Println(encoder.MixedEncode(value))
		default:
			return fmt.Errorf("unknown encoding kind %q", kind)
		}
		return nil
	},
}

func init() {
	encodeCmd.Flags().IntVar(&encodeFlags.depth, "depth", 3, "traversal depth for the path-traversal kind")
	rootCmd.AddCommand(encodeCmd)
}
