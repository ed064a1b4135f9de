package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"unimart/internal/query"
	"unimart/internal/repos"
	"unimart/internal/services"
)

var (
	flagSpec query.Spec
	flagMin  float64
	flagMax  float64
)

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Print the catalog as JSON, filtered and sorted like the browse page",
	Example: `  unimart listings --category Textbooks --min 400 --max 500
  unimart listings --search "lab coat" --sort price-low-high`,
	RunE: runListings,
}

func init() {
	f := listingsCmd.Flags()
	f.StringVar(&flagSpec.SearchText, "search", "", "case-insensitive text search")
	f.StringVar(&flagSpec.Category, "category", "", "exact category")
	f.StringVar(&flagSpec.Subject, "subject", "", "exact subject")
	f.StringVar(&flagSpec.Condition, "condition", "", "exact condition")
	f.Float64Var(&flagMin, "min", 0, "minimum price (inclusive)")
	f.Float64Var(&flagMax, "max", 0, "maximum price (inclusive)")
	f.BoolVar(&flagSpec.VerifiedOnly, "verified", false, "only blockchain-verified listings")
	f.StringVar(&flagSpec.SortKey, "sort", "", "price-low-high | price-high-low | rating | newest")
}

func runListings(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := services.NewCatalogService(repos.NewKVRepo(db))
	if err := catalog.Initialize(); err != nil {
		return err
	}

	spec := flagSpec
	if cmd.Flags().Changed("min") {
		spec.MinPrice = query.Price(flagMin)
	}
	if cmd.Flags().Changed("max") {
		spec.MaxPrice = query.Price(flagMax)
	}
	out := catalog.Query(spec)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"listings": out, "count": len(out)})
}
