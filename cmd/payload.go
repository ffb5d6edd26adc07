package cmd

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jiffoo/mallctl/pkg/content"
)

// commitMessage resolves the --message / --message-file pair shared by the
// payload and push commands.
func commitMessage(message, messageFile string) (string, error) {
	switch {
	case message != "" && messageFile != "":
		return "", fmt.Errorf("--message and --message-file are mutually exclusive")
	case message != "":
		return message, nil
	case messageFile != "":
		data, err := ioutil.ReadFile(messageFile)
		if err != nil {
			return "", fmt.Errorf("reading message file: %v", err)
		}
		msg := strings.TrimRight(string(data), "\n")
		if msg == "" {
			return "", fmt.Errorf("message file %s is empty", messageFile)
		}
		return msg, nil
	default:
		return "", fmt.Errorf("either --message or --message-file is required")
	}
}

func newPayloadCmd() *cobra.Command {
	var in, out, sha, message, messageFile string

	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Assemble a GitHub contents-API update payload",
		Long: `Wraps a file into the JSON body for a GitHub contents-API update:
commit message, base64 content and the blob SHA of the revision being
replaced. The SHA must be passed explicitly; look it up with
"git rev-parse <rev>:<path>".`,
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := app.LoadConfig()
			if err != nil {
				return err
			}

			msg, err := commitMessage(message, messageFile)
			if err != nil {
				return err
			}

			if in == "" {
				in = config.Encode.Input
			}
			if out == "" {
				out = config.Encode.PayloadOutput
			}

			_, err = content.WritePayloadFile(app.Log, resolve(config.Root, in), msg, sha, resolve(config.Root, out))
			return err
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input file (default: encode.input from config)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: encode.payload_output from config)")
	cmd.Flags().StringVar(&sha, "sha", "", "blob SHA of the file revision being replaced")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "file containing the commit message")
	cmd.MarkFlagRequired("sha")

	return cmd
}
