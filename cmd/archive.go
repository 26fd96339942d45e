package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qjroberts/xenforo-scraper/internal/archiver"
	"github.com/qjroberts/xenforo-scraper/internal/extract"
	"github.com/qjroberts/xenforo-scraper/internal/fetch"
	"github.com/qjroberts/xenforo-scraper/internal/logging"
	"github.com/qjroberts/xenforo-scraper/internal/store"
)

var (
	startPage      int
	maxConcurrency int
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive [forum-path1] [forum-path2] ...",
	Short: "Archive one or more forums into the database",
	Long: `Archive XenForo forums by walking their thread indexes and every
thread's post pages.

Forum paths are relative to the base URL; page 1 is fetched at the bare
path and later pages with the page-N suffix. Paths can also come from the
"forums" list in the config file.

Examples:
  # Archive a single forum
  xenforo-scraper archive --base-url https://example.com/ "index.php?forums/general.12/"

  # Archive several forums into a specific database
  xenforo-scraper archive --base-url https://example.com/ --db /tmp/archive.db \
    "index.php?forums/general.12/" "index.php?forums/offtopic.13/"

  # Resume a forum index from page 5
  xenforo-scraper archive --start-page 5 "index.php?forums/general.12/"`,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	// Archive-specific flags
	archiveCmd.Flags().IntVar(&startPage, "start-page", 1, "forum index page to start from")
	archiveCmd.Flags().IntVarP(&maxConcurrency, "concurrency", "c", 8, "maximum concurrent item archivals per page (0 = unbounded)")

	// Bind flags to viper
	viper.BindPFlag("start-page", archiveCmd.Flags().Lookup("start-page"))
	viper.BindPFlag("concurrency", archiveCmd.Flags().Lookup("concurrency"))
}

func runArchive(cmd *cobra.Command, args []string) error {
	forums := args
	if len(forums) == 0 {
		forums = viper.GetStringSlice("forums")
	}
	for _, path := range forums {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("forum path cannot be empty")
		}
	}

	base := viper.GetString("base-url")
	if base == "" {
		return fmt.Errorf("base URL is required (--base-url or config)")
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	log := logging.New(viper.GetBool("verbose"))
	defer log.Sync()

	recordStore, err := store.Open(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer recordStore.Close()

	fetcher := fetch.NewClient(fetch.Options{
		UserAgent: viper.GetString("user-agent"),
		Timeout:   viper.GetDuration("timeout"),
		Logger:    log,
	})

	config := archiver.Config{
		BaseURL:        base,
		Forums:         forums,
		StartPage:      viper.GetInt("start-page"),
		MaxConcurrency: viper.GetInt("concurrency"),
		Selectors:      selectorsFromConfig(),
	}

	arch, err := archiver.New(config, fetcher, recordStore, log)
	if err != nil {
		return fmt.Errorf("failed to create archiver: %w", err)
	}

	totals, err := arch.Run(context.Background())
	if err != nil {
		return fmt.Errorf("archiving failed: %w", err)
	}

	fmt.Printf("\nArchiving complete!\n")
	fmt.Printf("Forums: %d, Threads: %d, Posts: %d\n", totals.Forums, totals.Threads, totals.Posts)
	fmt.Printf("Database: %s\n", viper.GetString("db"))

	return nil
}

// selectorsFromConfig reads selector overrides from the "selectors" config
// section. The stock XenForo selectors apply when a key is unset.
func selectorsFromConfig() extract.Selectors {
	return extract.Selectors{
		ThreadItem:       viper.GetString("selectors.thread-item"),
		ThreadLink:       viper.GetString("selectors.thread-link"),
		Message:          viper.GetString("selectors.message"),
		MessageAuthor:    viper.GetString("selectors.message-author"),
		MessageBody:      viper.GetString("selectors.message-body"),
		MessageDate:      viper.GetString("selectors.message-date"),
		MessageLikes:     viper.GetString("selectors.message-likes"),
		MessagePermalink: viper.GetString("selectors.message-permalink"),
		MessageNumber:    viper.GetString("selectors.message-number"),
		PageNav:          viper.GetString("selectors.page-nav"),
		PageNavLast:      viper.GetString("selectors.page-nav-last"),
		DateAttr:         viper.GetString("selectors.date-attr"),
		TimeAttr:         viper.GetString("selectors.time-attr"),
		DateTitleAttr:    viper.GetString("selectors.date-title-attr"),
	}
}
