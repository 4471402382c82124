package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/inventory/internal/model"
	"github.com/idilsaglam/inventory/internal/ui"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, usagef("not an item id: %q", s)
	}
	return id, nil
}

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all items ordered by name",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}
			lines := []string{ui.SummaryLine(model.Summarize(items)), ""}
			lines = append(lines, ui.ItemLines(items)...)
			lines = append(lines, "", ui.C(ui.Current().Muted, "Tip: add with `inventory add --name Laptop --qty 5 --price 899.99`"))
			ui.Panel(lines)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			it, err := a.store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			ui.Panel(ui.ItemDetail(it))
			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var name, category, qty, price string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Example: `  inventory add --name Laptop --category Electronics --qty 5 --price 899.99
  inventory add --name "Free sample"`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := model.ParseDraft(name, category, qty, price)
			if err != nil {
				return usageError{fmt.Errorf("add: %w", err)}
			}
			id, err := a.store.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("added %q (id %d)", d.Name, id))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "item name (required)")
	f.StringVar(&category, "category", "", "category")
	f.StringVar(&qty, "qty", "0", "quantity in stock")
	f.StringVar(&price, "price", "0", "unit price")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var name, category, qty, price string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an item; unset flags keep their value",
		Example: `  inventory edit 3 --qty 12
  inventory edit 3 --category ""`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			it, err := a.store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			d := it.Draft()
			f := cmd.Flags()
			if f.Changed("name") {
				d.Name = strings.TrimSpace(name)
			}
			if f.Changed("category") {
				d.Category = strings.TrimSpace(category)
			}
			if f.Changed("qty") {
				if d.Quantity, err = model.ParseQuantity(qty); err != nil {
					return usageError{fmt.Errorf("edit: %w", err)}
				}
			}
			if f.Changed("price") {
				if d.Price, err = model.ParsePrice(price); err != nil {
					return usageError{fmt.Errorf("edit: %w", err)}
				}
			}
			if err := d.Validate(); err != nil {
				return usageError{fmt.Errorf("edit: %w", err)}
			}

			if err := a.store.Update(cmd.Context(), id, d); err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("updated %d", id))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "new name")
	f.StringVar(&category, "category", "", "new category")
	f.StringVar(&qty, "qty", "", "new quantity")
	f.StringVar(&price, "price", "", "new unit price")
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.Delete(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("removed %d", id))
			return nil
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term...>",
		Short: "List items whose name or category contains the term",
		Long: `Matches are case-insensitive substrings of name or category.
% and _ match literally. A blank term lists everything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(strings.Join(args, " "))

			var (
				items []model.Item
				err   error
			)
			if term == "" {
				items, err = a.store.List(cmd.Context())
			} else {
				items, err = a.store.Search(cmd.Context(), term)
			}
			if err != nil {
				return err
			}

			t := ui.Current()
			head := fmt.Sprintf("%s %d", ui.C(t.Accent, "matches"), len(items))
			if term != "" {
				head += "  " + ui.C(t.Muted, "for "+strconv.Quote(term))
			}
			lines := []string{head, ""}
			lines = append(lines, ui.ItemLines(items)...)
			ui.Panel(lines)
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Write all items to a CSV file",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Export(cmd.Context(), args[0]); err != nil {
				return err
			}
			ui.OK("exported to " + args[0])
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Add every item of a CSV file; nothing is added if a row is invalid",
		Long: `The first line is a header and is skipped. Each following line is
ID,Name,Category,Quantity,Price; the ID column is ignored and new ids are
assigned. Lines with fewer than five fields are skipped.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.store.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("imported %d items", n))
			return nil
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals per category",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}
			s := model.Summarize(items)
			lines := []string{ui.SummaryLine(s), ""}
			lines = append(lines, ui.CategoryLines(s)...)
			ui.Panel(lines)
			return nil
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive view (default)",
		Args:        exactArgs(0),
		Annotations: map[string]string{interactive: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.RunInteractive(cmd.Context(), a.store)
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the current settings to the config file",
		Args:        exactArgs(0),
		Annotations: map[string]string{noStore: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfgPath == "" {
				return usagef("config init: no config path; pass --config")
			}
			if _, err := os.Stat(a.cfgPath); err == nil && !force {
				return usagef("config init: %s exists (use --force to overwrite)", a.cfgPath)
			}
			if err := a.cfg.Save(a.cfgPath); err != nil {
				return err
			}
			a.log.Info("config written", zap.String("path", a.cfgPath))
			ui.OK("wrote " + a.cfgPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:         "show",
		Short:       "Print the effective settings",
		Args:        exactArgs(0),
		Annotations: map[string]string{noStore: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			t := ui.Current()
			row := func(k, v string) string { return ui.C(t.Accent, fmt.Sprintf("%-15s", k)) + v }
			ui.Panel([]string{
				ui.C(t.Title, "Settings"),
				"",
				row("config", a.cfgPath),
				row("database.path", a.cfg.Database.Path),
				row("ui.theme", a.cfg.UI.Theme),
				row("ui.color", a.cfg.UI.Color),
				row("logging.level", a.cfg.Logging.Level),
				row("logging.format", a.cfg.Logging.Format),
			})
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
