// The import-animals binary loads the animal speed reference table from a
// CSV file with name,max_speed columns.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/runtimeexceptions/server/pkg/animals"
	"github.com/runtimeexceptions/server/pkg/bootstrap"
)

func main() {
	file := flag.String("file", "animals.csv", "path to the animal speed CSV")
	flag.Parse()

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx)
	if err != nil {
		slog.Error("Service init failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		slog.Error("Cannot open CSV", "file", *file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	store := animals.NewStore(svc.DB)
	count, err := store.ImportCSV(ctx, f)
	if err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d animals\n", count)
}
