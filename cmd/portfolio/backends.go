package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/portfolio/internal/gpu"
)

func newBackendsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List GPU backends and their adapters in preference order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			reports, errs := gpu.Probe(cfg.GPU.Backends)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tADAPTER\tTYPE\tDRIVER")
			for _, r := range reports {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Backend, r.Name, r.Type, r.Driver)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			names := make([]string, 0, len(errs))
			for name := range errs {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, errs[name])
			}
			if len(reports) == 0 {
				return gpu.ErrNoAdapter
			}
			return nil
		},
	}
}
