package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD (UTC) or Unix milliseconds
func parseDate(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: use YYYY-MM-DD or Unix milliseconds", s)
	}
	return t.UnixMilli(), nil
}

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player management commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersCountCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersCreateCmd())
	cmd.AddCommand(newPlayersUpdateCmd())
	cmd.AddCommand(newPlayersDeleteCmd())

	return cmd
}

// filterFlags maps CLI flags onto list and count query parameters
type filterFlags struct {
	name, title, race, profession string
	after, before                 string
	banned                        bool
	minExp, maxExp                int
	minLevel, maxLevel            int
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name contains")
	fs.StringVar(&f.title, "title", "", "Title contains")
	fs.StringVar(&f.race, "race", "", "Race")
	fs.StringVar(&f.profession, "profession", "", "Profession")
	fs.StringVar(&f.after, "after", "", "Born on or after (YYYY-MM-DD or millis)")
	fs.StringVar(&f.before, "before", "", "Born on or before (YYYY-MM-DD or millis)")
	fs.BoolVar(&f.banned, "banned", false, "Banned status")
	fs.IntVar(&f.minExp, "min-experience", 0, "Minimum experience")
	fs.IntVar(&f.maxExp, "max-experience", 0, "Maximum experience")
	fs.IntVar(&f.minLevel, "min-level", 0, "Minimum level")
	fs.IntVar(&f.maxLevel, "max-level", 0, "Maximum level")
}

// query includes only the flags the user set
func (f *filterFlags) query(fs *pflag.FlagSet) (url.Values, error) {
	q := url.Values{}
	setString := func(flag, param, v string) {
		if fs.Changed(flag) {
			q.Set(param, v)
		}
	}
	setInt := func(flag, param string, v int) {
		if fs.Changed(flag) {
			q.Set(param, strconv.Itoa(v))
		}
	}

	setString("name", "name", f.name)
	setString("title", "title", f.title)
	setString("race", "race", f.race)
	setString("profession", "profession", f.profession)
	for flag, v := range map[string]string{"after": f.after, "before": f.before} {
		if !fs.Changed(flag) {
			continue
		}
		ms, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", flag, err)
		}
		q.Set(flag, strconv.FormatInt(ms, 10))
	}
	if fs.Changed("banned") {
		q.Set("banned", strconv.FormatBool(f.banned))
	}
	setInt("min-experience", "minExperience", f.minExp)
	setInt("max-experience", "maxExperience", f.maxExp)
	setInt("min-level", "minLevel", f.minLevel)
	setInt("max-level", "maxLevel", f.maxLevel)
	return q, nil
}

func newPlayersListCmd() *cobra.Command {
	var (
		filter     filterFlags
		order      string
		pageNumber int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filter.query(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("order") {
				q.Set("order", order)
			}
			if cmd.Flags().Changed("page") {
				q.Set("pageNumber", strconv.Itoa(pageNumber))
			}
			if cmd.Flags().Changed("page-size") {
				q.Set("pageSize", strconv.Itoa(pageSize))
			}

			var result []Player
			if err := client.Get(cmd.Context(), "/players", q, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	filter.register(cmd.Flags())
	cmd.Flags().StringVar(&order, "order", "ID", "Sort by ID, NAME, TITLE, EXPERIENCE, BIRTHDAY or LEVEL")
	cmd.Flags().IntVar(&pageNumber, "page", 0, "Zero-based page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 3, "Page size")

	return cmd
}

func newPlayersCountCmd() *cobra.Command {
	var filter filterFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count players matching the filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filter.query(cmd.Flags())
			if err != nil {
				return err
			}

			var result CountResult
			if err := client.Get(cmd.Context(), "/players/count", q, &result.Count); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	filter.register(cmd.Flags())
	return cmd
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get(cmd.Context(), "/players/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

// playerFlags maps CLI flags onto a create or update body
type playerFlags struct {
	name, title, race, profession string
	birthday                      string
	experience                    int
	banned                        bool
}

func (f *playerFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Name (max 12 characters)")
	fs.StringVar(&f.title, "title", "", "Title (max 30 characters)")
	fs.StringVar(&f.race, "race", "", "Race")
	fs.StringVar(&f.profession, "profession", "", "Profession")
	fs.StringVar(&f.birthday, "birthday", "", "Birthday (YYYY-MM-DD or millis)")
	fs.IntVar(&f.experience, "experience", 0, "Experience (0 to 10000000)")
	fs.BoolVar(&f.banned, "banned", false, "Banned status")
}

// body includes only the flags the user set
func (f *playerFlags) body(fs *pflag.FlagSet) (map[string]any, error) {
	body := map[string]any{}
	for flag, v := range map[string]string{
		"name":       f.name,
		"title":      f.title,
		"race":       f.race,
		"profession": f.profession,
	} {
		if fs.Changed(flag) {
			body[flag] = v
		}
	}
	if fs.Changed("birthday") {
		ms, err := parseDate(f.birthday)
		if err != nil {
			return nil, fmt.Errorf("--birthday: %w", err)
		}
		body["birthday"] = ms
	}
	if fs.Changed("experience") {
		body["experience"] = f.experience
	}
	if fs.Changed("banned") {
		body["banned"] = f.banned
	}
	return body, nil
}

func newPlayersCreateCmd() *cobra.Command {
	var fields playerFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.body(cmd.Flags())
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post(cmd.Context(), "/players", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	fields.register(cmd.Flags())
	for _, name := range []string{"name", "title", "race", "profession", "birthday", "experience"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newPlayersUpdateCmd() *cobra.Command {
	var fields playerFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.body(cmd.Flags())
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post(cmd.Context(), "/players/"+url.PathEscape(args[0]), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	fields.register(cmd.Flags())
	return cmd
}

func newPlayersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), "/players/"+url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Player %s deleted", args[0]))
			return nil
		},
	}
}
