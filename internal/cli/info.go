package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/pkg/version"
)

type InfoOptions struct {
	ServerUrl string
	Output    string
	Remote    bool

	out io.Writer
}

func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		ServerUrl: "http://localhost:3443",
		Output:    "",
		Remote:    false,
		out:       os.Stdout,
	}
}

func NewCmdInfo() *cobra.Command {
	o := DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print Planner information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *InfoOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.StringVarP(&o.Output, "output", "o", o.Output, outputFlagUsage())
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Get information from the remote service")
}

func (o *InfoOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	o.ServerUrl = strings.TrimRight(o.ServerUrl, "/")
	return nil
}

func (o *InfoOptions) Validate() error {
	return validateOutput(o.Output)
}

func (o *InfoOptions) Run(ctx context.Context, args []string) error {
	var info v1alpha1.Info
	var err error

	if o.Remote {
		info, err = o.getRemoteInfo(ctx)
		if err != nil {
			return fmt.Errorf("failed to get remote info: %w", err)
		}
	} else {
		versionInfo := version.Get()
		info = v1alpha1.Info{
			GitCommit:   versionInfo.GitCommit,
			VersionName: versionInfo.GitVersion,
		}
	}

	return o.printInfo(info)
}

func (o *InfoOptions) getRemoteInfo(ctx context.Context) (v1alpha1.Info, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.ServerUrl+"/api/v1/info", nil)
	if err != nil {
		return v1alpha1.Info{}, fmt.Errorf("creating request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	response, err := client.Do(req)
	if err != nil {
		return v1alpha1.Info{}, fmt.Errorf("calling remote info endpoint: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return v1alpha1.Info{}, fmt.Errorf("remote service returned status: %d", response.StatusCode)
	}

	var info v1alpha1.Info
	if err := json.NewDecoder(response.Body).Decode(&info); err != nil {
		return v1alpha1.Info{}, fmt.Errorf("decoding remote info: %w", err)
	}
	return info, nil
}

func (o *InfoOptions) printInfo(info v1alpha1.Info) error {
	if o.Output != "" {
		return printObject(o.out, o.Output, info, func(w *tabwriter.Writer) {
			fmt.Fprintf(w, "VERSION NAME\t%s\n", info.VersionName)
			fmt.Fprintf(w, "GIT COMMIT\t%s\n", info.GitCommit)
		})
	}

	source := "Local CLI"
	if o.Remote {
		source = "Remote Service"
	}
	fmt.Fprintf(o.out, "Fracture Planner %s Information:\n", source)
	fmt.Fprintf(o.out, "  Version Name: %s\n", info.VersionName)
	fmt.Fprintf(o.out, "  Git Commit:   %s\n", info.GitCommit)
	return nil
}
