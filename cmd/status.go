package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qjroberts/xenforo-scraper/internal/store"
)

var recentLimit int

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the archive database holds",
	Long: `Show thread and post counts for the archive database, plus the most
recently dated posts.

Examples:
  # Summarize the default database
  xenforo-scraper status

  # Summarize a specific database and show more recent posts
  xenforo-scraper status --db /tmp/archive.db --recent 20`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().IntVar(&recentLimit, "recent", 10, "number of recent posts to list")
}

func runStatus(cmd *cobra.Command, args []string) error {
	dbFile := viper.GetString("db")
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		return fmt.Errorf("no archive database at %s", dbFile)
	}

	recordStore, err := store.Open(dbFile)
	if err != nil {
		return err
	}
	defer recordStore.Close()

	ctx := context.Background()
	threads, posts, err := recordStore.Counts(ctx)
	if err != nil {
		return err
	}

	summary := table.NewWriter()
	summary.SetOutputMirror(os.Stdout)
	summary.AppendHeader(table.Row{"Database", "Threads", "Posts"})
	summary.AppendRow(table.Row{dbFile, threads, posts})
	summary.Render()

	if recentLimit <= 0 {
		return nil
	}

	recent, err := recordStore.RecentPosts(ctx, recentLimit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("\nNo posts archived yet.")
		return nil
	}

	fmt.Println()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Thread", "Author", "Date", "Likes"})
	for _, p := range recent {
		number := "-"
		if p.Number > 0 {
			number = fmt.Sprintf("#%d", p.Number)
		}
		t.AppendRow(table.Row{number, p.Title, p.Author, p.Date.Format("2006-01-02 15:04"), p.Likes})
	}
	t.Render()

	return nil
}
