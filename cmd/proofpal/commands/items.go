package commands

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/erazemk/proofpal/cmd/proofpal/output"
	"github.com/erazemk/proofpal/internal/archive"
	"github.com/erazemk/proofpal/internal/export"
	"github.com/erazemk/proofpal/internal/model"
	"github.com/erazemk/proofpal/internal/settings"
	"github.com/erazemk/proofpal/internal/store"
)

var addFlags = struct {
	title, store, category  string
	date, returns, warranty string
	amount                  float64
	notes                   string
	files                   []string
}{}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new purchase",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		purchase, err := parseDate(addFlags.date)
		if err != nil {
			return err
		}

		in := model.ItemInput{
			Title:        addFlags.title,
			Store:        addFlags.store,
			Category:     addFlags.category,
			PurchaseDate: purchase,
			TotalAmount:  addFlags.amount,
			Notes:        addFlags.notes,
		}

		// Deadlines default from the user preferences when not given.
		prefs := settings.Load(cfg.SettingsPath())
		if addFlags.returns == "" {
			in.ReturnUntil = settings.DefaultReturnDate(purchase, prefs.ReturnDays)
		} else if in.ReturnUntil, err = parseDate(addFlags.returns); err != nil {
			return err
		}
		if addFlags.warranty == "" {
			in.WarrantyUntil = settings.DefaultWarrantyDate(purchase, prefs.WarrantyMonths)
		} else if in.WarrantyUntil, err = parseDate(addFlags.warranty); err != nil {
			return err
		}

		item, err := store.CreateItem(cmd.Context(), database, in)
		if err != nil {
			return err
		}
		output.Success("item %d created: %s", item.ID, item.Title)

		arch := archive.New(cfg.FilesDir())
		for _, src := range addFlags.files {
			desc, err := arch.CopyFileToItem(src, item.ID)
			if err != nil {
				return err
			}
			file, err := store.AddFile(cmd.Context(), database, item.ID, *desc)
			if err != nil {
				return err
			}
			output.Success("attached %s (%s)", file.Path, humanize.Bytes(uint64(file.Size)))
		}
		return nil
	},
}

var listFlags = struct {
	text, store, category            string
	from, to, dueReturn, dueWarranty string
}{}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List purchases, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		filter := model.Filter{
			Text:     listFlags.text,
			Store:    listFlags.store,
			Category: listFlags.category,
		}
		if listFlags.from != "" {
			if filter.Start, err = parseDate(listFlags.from); err != nil {
				return err
			}
		}
		if listFlags.to != "" {
			if filter.End, err = parseDate(listFlags.to); err != nil {
				return err
			}
		}
		if listFlags.dueReturn != "" {
			if filter.DueReturn, err = parseDate(listFlags.dueReturn); err != nil {
				return err
			}
		}
		if listFlags.dueWarranty != "" {
			if filter.DueWarranty, err = parseDate(listFlags.dueWarranty); err != nil {
				return err
			}
		}

		items, err := store.ListItems(cmd.Context(), database, filter)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			output.Muted("no items found")
			return nil
		}

		output.Header(fmt.Sprintf("%-5s %-30s %-15s %-12s %-12s %12s", "ID", "Title", "Store", "Category", "Purchased", "Amount"))
		for _, item := range items {
			fmt.Printf("%-5d %-30s %-15s %-12s %-12s %12s\n",
				item.ID, truncate(item.Title, 30), truncate(item.Store, 15), truncate(item.Category, 12),
				item.PurchaseDate.Format("2006-01-02"), export.FormatMoney(item.TotalAmount))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one purchase with its alerts and attachments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		_, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		item, err := store.GetItem(cmd.Context(), database, id)
		if err != nil {
			return err
		}

		output.Header(item.Title)
		fmt.Printf("Store:          %s\n", item.Store)
		fmt.Printf("Category:       %s\n", item.Category)
		fmt.Printf("Purchased:      %s\n", item.PurchaseDate.Format("2006-01-02"))
		fmt.Printf("Amount:         %s\n", export.FormatMoney(item.TotalAmount))
		fmt.Printf("Return until:   %s\n", item.ReturnUntil.Format("2006-01-02"))
		fmt.Printf("Warranty until: %s\n", item.WarrantyUntil.Format("2006-01-02"))
		if item.Notes != "" {
			fmt.Printf("Notes:          %s\n", item.Notes)
		}

		alerts, err := store.ListItemAlerts(cmd.Context(), database, id)
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			state := "pending"
			if alert.SentAt != nil {
				state = "sent " + humanize.Time(*alert.SentAt)
			}
			output.Muted("%s reminder due %s (%s)", alert.Kind, alert.DueOn.Format("2006-01-02"), state)
		}

		files, err := store.ListFiles(cmd.Context(), database, id)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			fmt.Println()
			output.Header("Attachments")
			for _, file := range files {
				fmt.Printf("%-5d %s  %s  %s\n", file.ID, file.Path, file.MIME, humanize.Bytes(uint64(file.Size)))
			}
		}
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a purchase (re-arms its reminders)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		_, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		item, err := store.GetItem(cmd.Context(), database, id)
		if err != nil {
			return err
		}

		in := model.ItemInput{
			Title:         item.Title,
			Store:         item.Store,
			Category:      item.Category,
			PurchaseDate:  item.PurchaseDate,
			TotalAmount:   item.TotalAmount,
			ReturnUntil:   item.ReturnUntil,
			WarrantyUntil: item.WarrantyUntil,
			Notes:         item.Notes,
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			in.Title = addFlags.title
		}
		if flags.Changed("store") {
			in.Store = addFlags.store
		}
		if flags.Changed("category") {
			in.Category = addFlags.category
		}
		if flags.Changed("amount") {
			in.TotalAmount = addFlags.amount
		}
		if flags.Changed("notes") {
			in.Notes = addFlags.notes
		}
		if flags.Changed("date") {
			if in.PurchaseDate, err = parseDate(addFlags.date); err != nil {
				return err
			}
		}
		if flags.Changed("return-until") {
			if in.ReturnUntil, err = parseDate(addFlags.returns); err != nil {
				return err
			}
		}
		if flags.Changed("warranty-until") {
			if in.WarrantyUntil, err = parseDate(addFlags.warranty); err != nil {
				return err
			}
		}

		if err := store.UpdateItem(cmd.Context(), database, id, in); err != nil {
			return err
		}
		output.Success("item %d updated", id)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a purchase, its records and its archived files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}

		cfg, database, err := openEnv()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := store.DeleteItem(cmd.Context(), database, id); err != nil {
			return err
		}
		// Row deletion does not free disk space; the archive cleanup is
		// the caller's job.
		if err := archive.New(cfg.FilesDir()).RemoveItemFiles(id); err != nil {
			output.Warning("item deleted, but archived files remain: %v", err)
			return nil
		}
		output.Success("item %d deleted", id)
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func init() {
	addCmd.Flags().StringVar(&addFlags.title, "title", "", "Item title (required)")
	addCmd.Flags().StringVar(&addFlags.store, "store", "", "Store (required)")
	addCmd.Flags().StringVar(&addFlags.category, "category", "", "Category (required)")
	addCmd.Flags().StringVar(&addFlags.date, "date", "", "Purchase date, YYYY-MM-DD (required)")
	addCmd.Flags().Float64Var(&addFlags.amount, "amount", 0, "Total amount")
	addCmd.Flags().StringVar(&addFlags.returns, "return-until", "", "Return deadline (default: purchase + preference)")
	addCmd.Flags().StringVar(&addFlags.warranty, "warranty-until", "", "Warranty deadline (default: purchase + preference)")
	addCmd.Flags().StringVar(&addFlags.notes, "notes", "", "Free-text notes")
	addCmd.Flags().StringSliceVar(&addFlags.files, "file", nil, "Proof-of-purchase file to attach (repeatable)")

	updateCmd.Flags().StringVar(&addFlags.title, "title", "", "Item title")
	updateCmd.Flags().StringVar(&addFlags.store, "store", "", "Store")
	updateCmd.Flags().StringVar(&addFlags.category, "category", "", "Category")
	updateCmd.Flags().StringVar(&addFlags.date, "date", "", "Purchase date, YYYY-MM-DD")
	updateCmd.Flags().Float64Var(&addFlags.amount, "amount", 0, "Total amount")
	updateCmd.Flags().StringVar(&addFlags.returns, "return-until", "", "Return deadline")
	updateCmd.Flags().StringVar(&addFlags.warranty, "warranty-until", "", "Warranty deadline")
	updateCmd.Flags().StringVar(&addFlags.notes, "notes", "", "Free-text notes")

	listCmd.Flags().StringVar(&listFlags.text, "text", "", "Substring match over title, store and category")
	listCmd.Flags().StringVar(&listFlags.store, "store", "", "Exact store match")
	listCmd.Flags().StringVar(&listFlags.category, "category", "", "Exact category match")
	listCmd.Flags().StringVar(&listFlags.from, "from", "", "Purchased on or after, YYYY-MM-DD")
	listCmd.Flags().StringVar(&listFlags.to, "to", "", "Purchased on or before, YYYY-MM-DD")
	listCmd.Flags().StringVar(&listFlags.dueReturn, "due-return", "", "Return deadline on or before, YYYY-MM-DD")
	listCmd.Flags().StringVar(&listFlags.dueWarranty, "due-warranty", "", "Warranty deadline on or before, YYYY-MM-DD")

	rootCmd.AddCommand(addCmd, listCmd, showCmd, updateCmd, deleteCmd)
}
