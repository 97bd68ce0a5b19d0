package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/schemaorg"
)

var dialectsProperties bool

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List supported source dialects",
	Long: `List the metadata dialects records can be converted from.

With --properties, also list the Dataset properties every conversion
queries, in query order. Only these names are accepted as overrides.`,
	Args: cobra.NoArgs,
	RunE: runDialects,
}

func init() {
	dialectsCmd.Flags().BoolVar(&dialectsProperties, "properties", false, "Also list the recognized Dataset properties")
}

func runDialects(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIALECT\tEXTENSIONS\tDESCRIPTION")
	fmt.Fprintln(w, "-------\t----------\t-----------")
	for _, d := range format.DefaultRegistry.List() {
		f, _ := format.Get(d)
		fmt.Fprintf(w, "%s\t%s\t%s\n", d, strings.Join(f.Extensions(), ","), f.Description())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if dialectsProperties {
		fmt.Println("\nDataset properties:")
		for _, p := range schemaorg.Properties {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
