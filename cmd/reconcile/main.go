package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"fayclick/internal/config"
	"fayclick/internal/db"
	invoicerepo "fayclick/internal/repository/invoice"
	structurerepo "fayclick/internal/repository/structure"
)

// reconcile lists invoices that never received an encashment so a
// merchant (or support) can settle or void them by hand.
func main() {
	var structureCode string
	flag.StringVar(&structureCode, "structure", "", "Structure code to reconcile")
	flag.Parse()

	if structureCode == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[reconcile] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	structure, err := structurerepo.NewPostgres(pool).GetByCode(ctx, structureCode)
	if err != nil {
		logger.Fatalf("lookup structure %q: %v", structureCode, err)
	}

	unsettled, err := invoicerepo.NewPostgres(pool, logger).ListUnsettled(ctx, structure.ID)
	if err != nil {
		logger.Fatalf("list unsettled invoices: %v", err)
	}

	if len(unsettled) == 0 {
		fmt.Printf("structure %s: no unsettled invoices\n", structure.Code)
		return
	}

	fmt.Printf("structure %s: %d unsettled invoice(s)\n", structure.Code, len(unsettled))
	var total int64
	for _, inv := range unsettled {
		fmt.Printf("  %s  %s  total=%d FCFA\n", inv.Number, inv.CreatedAt.Format("2006-01-02 15:04"), inv.Total)
		total += inv.Total
	}
	fmt.Printf("outstanding total: %d FCFA\n", total)
}
