package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"pubdeck/internal/api"
	"pubdeck/internal/format"
	"pubdeck/internal/store"
	"pubdeck/internal/tui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	Timeout    time.Duration
	PrettyJSON bool
	Format     string
	UserID     int
}

func NewRootCmd() *cobra.Command {
	// Best-effort: a .env in the working directory may carry PUBDECK_* vars.
	_ = godotenv.Load()

	app := &App{}

	cmd := &cobra.Command{
		Use:          "pubdeck",
		Short:        "Publications manager CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  pubdeck

  # Scriptable commands
  pubdeck posts list
  pubdeck posts create --title "Hello" --body "First publication"

  # Validate files before attaching them
  pubdeck files check report.pdf photo.jpeg
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("PUBDECK_API_URL", api.DefaultBaseURL), "Base URL of the posts service")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", 15*time.Second, "Per-request timeout for remote calls")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PUBDECK_FORMAT", "json"), "Output format (json|table)")
	cmd.PersistentFlags().IntVar(&app.UserID, "user", 1, "Author id stamped on created and updated posts")

	cmd.AddCommand(newPostsCmd(app))
	cmd.AddCommand(newFilesCmd(app))

	return cmd
}

func runTUI(app *App) error {
	return tui.Run(newStore(app))
}

func newStore(app *App) *store.Store {
	hc := &http.Client{Timeout: app.Timeout}
	return store.New(api.NewClient(app.APIURL, hc).WithUser(app.UserID))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
