package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/soso/profile"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"profile"},
	Short:   "Manage override profiles",
	Long: `Manage override profiles.

A profile is a named set of property values applied to every record
converted with --profile. Built-in profiles ship with soso; user profiles
are stored in $XDG_CONFIG_HOME/soso/profiles/ and shadow built-in ones of
the same name. Command line --override values win over profile values.

Examples:
  # List all profiles
  soso profiles list

  # Show a profile's contents
  soso profiles show edi

  # Create a profile
  soso profiles create my-lab -d eml --override license=CC-BY-4.0

  # Delete a profile
  soso profiles delete my-lab`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfilesList,
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesShow,
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a user profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesDelete,
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a user profile",
	Long: `Create a user profile from --override values, or from an existing YAML
file with --from-file.

Override keys must be Dataset properties (see "soso dialects --properties").`,
	Args: cobra.ExactArgs(1),
	RunE: runProfilesCreate,
}

var (
	profileDialect     string
	profileDescription string
	profileOverrides   []string
	profileFromFile    string
	profileForce       bool
)

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	profilesCmd.AddCommand(profilesCreateCmd)

	profilesCreateCmd.Flags().StringVarP(&profileDialect, "dialect", "d", "", "Restrict the profile to one dialect")
	profilesCreateCmd.Flags().StringVar(&profileDescription, "description", "", "Profile description")
	profilesCreateCmd.Flags().StringArrayVar(&profileOverrides, "override", nil, "Property value, key=value (repeatable)")
	profilesCreateCmd.Flags().StringVar(&profileFromFile, "from-file", "", "Read the profile from a YAML file")
	profilesCreateCmd.Flags().BoolVarP(&profileForce, "force", "f", false, "Replace an existing user profile")
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	names, err := profile.All()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("No profiles found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIALECT\tSOURCE\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-------\t------\t-----------")

	for _, name := range names {
		p, err := profile.Load(name)
		if err != nil {
			fmt.Fprintf(w, "%s\t?\t?\terror loading\n", name)
			continue
		}
		dialect := p.Dialect
		if dialect == "" {
			dialect = "any"
		}
		source := "user"
		if p.Builtin {
			source = "built-in"
		}
		desc := p.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, dialect, source, desc)
	}
	return w.Flush()
}

func runProfilesShow(cmd *cobra.Command, args []string) error {
	p, err := profile.Load(args[0])
	if err != nil {
		return err
	}

	// Print as YAML
	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func runProfilesDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !profile.Exists(name) {
		return fmt.Errorf("profile %q is not a user profile", name)
	}

	if err := profile.Delete(name); err != nil {
		return err
	}

	fmt.Printf("Deleted profile: %s\n", name)
	return nil
}

func runProfilesCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	if profile.Exists(name) && !profileForce {
		return fmt.Errorf("profile %q already exists; delete it first or use --force", name)
	}

	p := &profile.Profile{}
	if profileFromFile != "" {
		loaded, err := profile.LoadFile(profileFromFile)
		if err != nil {
			return err
		}
		p = loaded
	}
	p.Name = name
	if profileDialect != "" {
		p.Dialect = profileDialect
	}
	if profileDescription != "" {
		p.Description = profileDescription
	}

	overrides, err := parseOverrides(profileOverrides)
	if err != nil {
		return err
	}
	p.Overrides = p.Merge(overrides)

	if err := p.Save(); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	fmt.Printf("Created profile: %s\n", name)
	fmt.Printf("Saved to: %s\n", profile.ProfilePath(name))
	fmt.Printf("\n%d overrides. Review with:\n", len(p.Overrides))
	fmt.Printf("  soso profiles show %s\n", name)

	return nil
}
