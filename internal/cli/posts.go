package cli

import (
	"context"
	"strconv"

	"pubdeck/internal/model"

	"github.com/spf13/cobra"
)

func newPostsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Publication commands",
	}

	cmd.AddCommand(newPostsListCmd(app))
	cmd.AddCommand(newPostsShowCmd(app))
	cmd.AddCommand(newPostsCreateCmd(app))
	cmd.AddCommand(newPostsUpdateCmd(app))
	cmd.AddCommand(newPostsDeleteCmd(app))

	return cmd
}

func newPostsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all publications",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := newStore(app)
			if err := st.FetchAll(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, st.Posts())
		},
	}
}

func newPostsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st := newStore(app)
			if err := st.FetchAll(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			p, ok := st.Find(id)
			if !ok {
				return writeErr(cmd, errNotFound("post", id))
			}
			return writeOut(cmd, app, p)
		},
	}
}

func newPostsCreateCmd(app *App) *cobra.Command {
	var title string
	var body string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a publication",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := model.Draft{Title: title, Body: body}
			if err := d.Validate(); err != nil {
				return writeErr(cmd, err)
			}
			st := newStore(app)
			p, err := st.Create(context.Background(), d)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Publication title (min 3 characters)")
	cmd.Flags().StringVar(&body, "body", "", "Publication body (min 10 characters)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func newPostsUpdateCmd(app *App) *cobra.Command {
	var title string
	var body string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			d := model.Draft{Title: title, Body: body}
			if err := d.Validate(); err != nil {
				return writeErr(cmd, err)
			}
			st := newStore(app)
			p, err := st.Update(context.Background(), id, d)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title (min 3 characters)")
	cmd.Flags().StringVar(&body, "body", "", "New body (min 10 characters)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func newPostsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st := newStore(app)
			if err := st.Delete(context.Background(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, &model.ValidationError{Field: "id", Reason: "must be an integer"}
	}
	return id, nil
}
