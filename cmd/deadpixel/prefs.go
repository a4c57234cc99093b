package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deadpixel/internal/storage"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or change preferences",
	Long: `Preferences are stored in the database and shared with the game.

Keys: ` + fmt.Sprint(storage.PreferenceKeys()) + `

Examples:
  deadpixel prefs list
  deadpixel prefs get reduced_motion
  deadpixel prefs set show_hints true`,
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every preference",
	Args:  cobra.NoArgs,
	RunE:  runPrefsList,
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	prefsCmd.AddCommand(prefsListCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

// openSeededStore opens the database with config preferences filled in for
// keys the player never set.
func openSeededStore() (*storage.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	if err := store.SeedPreferences(appConfig.Preferences); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func runPrefsList(cmd *cobra.Command, _ []string) error {
	store, err := openSeededStore()
	if err != nil {
		return err
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, key := range storage.PreferenceKeys() {
		v, _ := storage.PreferenceValue(prefs, key)
		fmt.Fprintf(out, "  %-20s %t\n", key, v)
	}
	return nil
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	store, err := openSeededStore()
	if err != nil {
		return err
	}
	defer store.Close()

	prefs, err := store.LoadPreferences()
	if err != nil {
		return err
	}
	v, err := storage.PreferenceValue(prefs, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q: want true or false", args[1])
	}

	store, err := openSeededStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetPreference(args[0], value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %t\n", args[0], value)
	return nil
}
