package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the figure cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached dataset and figure",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}

			removed, err := clearCacheDir(dir)
			if err != nil {
				return err
			}
			if removed == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Removed %d cached entries", removed)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearCacheDir empties the hash fan-out the file cache writes under dir
// and returns the number of entries removed. The root directory itself is
// kept so a following run can reuse it.
func clearCacheDir(dir string) (int, error) {
	children, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, child := range children {
		path := filepath.Join(dir, child.Name())
		if !child.IsDir() {
			if err := os.Remove(path); err == nil {
				removed++
			}
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return removed, err
		}
		removed += len(entries)
	}
	return removed, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("locate cache: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
