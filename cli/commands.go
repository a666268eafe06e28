// Package cli provides the Cobra-based CLI for the shopping cart simulator.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"shopcart/domain"
	"shopcart/store"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:           "cart",
		Short:         "A single-user shopping cart simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests to inject catalog
			if productCatalog != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(viper.GetString("log-level"))}),
			))

			c, err := store.NewCatalog(
				viper.GetString("catalog"),
				viper.GetString("catalog-file"),
			)
			if c == nil {
				return err
			}
			if err != nil {
				slog.Warn("catalog records skipped", "file", viper.GetString("catalog-file"), "error", err)
			}
			slog.Debug("catalog ready", "kind", viper.GetString("catalog"), "products", c.Len())
			productCatalog = c
			return nil
		},
	}

	productCatalog domain.Catalog
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// productJSON is the machine-readable form printed by list commands
type productJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shopping menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			menu := NewMenu(productCatalog, store.NewInMemoryCart(), cmd.InOrStdin(), cmd.OutOrStdout())
			return menu.Run(cmd.Context())
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("catalog", "sample", "catalog source: sample|empty|file")
	rootCmd.PersistentFlags().String("catalog-file", "data/catalog.json", "catalog file path (json, ndjson or yaml)")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")

	viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("catalog-file", rootCmd.PersistentFlags().Lookup("catalog-file"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("CART")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// catalog
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the product catalog",
	}
	rootCmd.AddCommand(catalogCmd)

	var lOutput string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := productCatalog.ListItems()
			out := cmd.OutOrStdout()
			if lOutput == "json" {
				list := make([]productJSON, 0, len(items))
				for _, p := range items {
					list = append(list, productJSON{ID: p.ID(), Name: p.Name(), Price: p.UnitPrice().StringFixed(2)})
				}
				b, err := json.MarshalIndent(list, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}
			for _, p := range items {
				fmt.Fprintf(out, "%s | %s | %s\n", p.ID(), p.Name(), p.UnitPrice().StringFixed(2))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&lOutput, "output", "", "output format")
	catalogCmd.AddCommand(listCmd)

	var exportFile string
	exportCmd := &cobra.Command{
		Use:   "export --file <file>",
		Short: "Export the catalog to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if exportFile == "" {
				return errors.New("--file required")
			}
			items := productCatalog.ListItems()
			if err := store.SaveCatalogFile(exportFile, items); err != nil {
				slog.Error("export failed", "file", exportFile, "error", err)
				return err
			}
			slog.Info("catalog exported", "file", exportFile, "products", len(items))
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportFile, "file", "", "output file")
	catalogCmd.AddCommand(exportCmd)

	// price
	priceCmd := &cobra.Command{
		Use:     "price SKU[=QTY]...",
		Aliases: []string{"quote"},
		Short:   "Price a cart without entering the menu",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart := store.NewInMemoryCart()
			start := time.Now()
			for _, arg := range args {
				sku, qty, err := parseCartArg(arg)
				if err != nil {
					return err
				}
				p, ok := productCatalog.FindByID(sku)
				if !ok {
					return domain.NewProductNotFoundError(domain.NormalizeSKU(sku))
				}
				if err := cart.AddItem(p, qty); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, l := range cart.Lines() {
				fmt.Fprintf(out, "%s | %s | %d | %s\n",
					l.Product().ID(), l.Product().Name(), l.Quantity(), l.Total().StringFixed(2))
			}
			subtotal := cart.Subtotal()
			fmt.Fprintf(out, "Subtotal: %s\n", money(subtotal))
			slog.Debug("cart priced", "lines", cart.Len(), "subtotal", subtotal.StringFixed(2),
				"duration_ms", time.Since(start).Milliseconds())
			return nil
		},
	}
	rootCmd.AddCommand(priceCmd)
}

// parseCartArg reads "SKU" or "SKU=QTY".
func parseCartArg(arg string) (string, int, error) {
	sku, qtyText, found := strings.Cut(arg, "=")
	if strings.TrimSpace(sku) == "" {
		return "", 0, domain.NewValidationError("id", "cannot be empty", arg)
	}
	if !found {
		return sku, 1, nil
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyText))
	if err != nil {
		return "", 0, domain.NewValidationError("quantity", "not a whole number", qtyText)
	}
	return sku, qty, nil
}

func Execute() error {
	return rootCmd.Execute()
}
