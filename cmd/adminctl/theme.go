package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/portfolio-admin/internal/prefs"
)

var themeOwner string

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change an admin's dashboard theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored theme settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := application.Theme.Get(cmd.Context(), themeOwner)
		if err != nil {
			return err
		}
		printTheme(cmd, theme)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more theme settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch prefs.Patch
		for flag, field := range map[string]**string{
			"mode":    &patch.Mode,
			"nav":     &patch.NavColor,
			"sidebar": &patch.SidebarColor,
			"button":  &patch.ButtonColor,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*field = &v
			}
		}
		if patch == (prefs.Patch{}) {
			return fmt.Errorf("nothing to set: pass at least one of --mode, --nav, --sidebar, --button")
		}

		theme, err := application.Theme.Update(cmd.Context(), themeOwner, patch)
		if err != nil {
			return err
		}
		printTheme(cmd, theme)
		return nil
	},
}

var themeResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default theme settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		theme, err := application.Theme.Reset(cmd.Context(), themeOwner)
		if err != nil {
			return err
		}
		printTheme(cmd, theme)
		return nil
	},
}

func init() {
	themeCmd.PersistentFlags().StringVar(&themeOwner, "owner", prefs.DefaultOwner, "user id that owns the settings")

	themeSetCmd.Flags().String("mode", "", "theme mode (light, dark, system)")
	themeSetCmd.Flags().String("nav", "", "navigation bar color")
	themeSetCmd.Flags().String("sidebar", "", "sidebar color")
	themeSetCmd.Flags().String("button", "", "button color")

	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeResetCmd)
}

func printTheme(cmd *cobra.Command, theme prefs.Theme) {
	if jsonOutput {
		printJSON(cmd.OutOrStdout(), theme)
		return
	}
	t := table{header: []string{"SETTING", "VALUE"}}
	t.rows = [][]string{
		{"owner", themeOwner},
		{"mode", string(theme.Mode)},
		{"navColor", string(theme.NavColor)},
		{"sidebarColor", string(theme.SidebarColor)},
		{"buttonColor", string(theme.ButtonColor)},
	}
	t.write(cmd.OutOrStdout())
}
