package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jiffoo/mallctl/pkg/content"
)

// resolve joins a relative path onto the project root.
func resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func newEncodeCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write the transport encoding of a file",
		Long:  "Reads the input file (the README by default) and writes its base64 transport encoding, for embedding in API payloads.",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			if in == "" {
				in = config.Encode.Input
			}
			if out == "" {
				out = config.Encode.Output
			}

			_, err = content.EncodeFile(app.Log, resolve(config.Root, in), resolve(config.Root, out))
			return err
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input file (default: encode.input from config)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: encode.output from config)")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Reverse the transport encoding",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			if in == "" {
				in = config.Encode.Output
			}

			return content.DecodeFile(app.Log, resolve(config.Root, in), resolve(config.Root, out))
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "encoded input file (default: encode.output from config)")
	cmd.Flags().StringVar(&out, "out", "", "decoded output file")
	cmd.MarkFlagRequired("out")

	return cmd
}
