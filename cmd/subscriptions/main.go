// The subscriptions binary manages the application's Strava push
// subscription: create (replacing any stale one), list, delete.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/runtimeexceptions/server/pkg/bootstrap"
	"github.com/runtimeexceptions/server/pkg/webhook"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: subscriptions <create|list|delete -id N>")
	os.Exit(2)
}

func main() {
	bootstrap.InitLogger()
	cfg := bootstrap.LoadConfig()

	if len(os.Args) < 2 {
		usage()
	}

	manager := &webhook.Manager{
		ClientID:     cfg.StravaClientID,
		ClientSecret: cfg.StravaClientSecret,
		CallbackURL:  cfg.CallbackURL,
		VerifyToken:  cfg.VerifyToken,
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "create":
		sub, err := manager.Create(ctx)
		if err != nil {
			slog.Error("Create failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("created subscription %d -> %s\n", sub.ID, sub.CallbackURL)
	case "list":
		subs, err := manager.List(ctx)
		if err != nil {
			slog.Error("List failed", "error", err)
			os.Exit(1)
		}
		if len(subs) == 0 {
			fmt.Println("no subscriptions")
			return
		}
		for _, sub := range subs {
			fmt.Printf("%d\t%s\n", sub.ID, sub.CallbackURL)
		}
	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		deleteID := fs.Int64("id", 0, "subscription id")
		fs.Parse(os.Args[2:])
		if *deleteID == 0 {
			usage()
		}
		if err := manager.Delete(ctx, *deleteID); err != nil {
			slog.Error("Delete failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("deleted subscription %d\n", *deleteID)
	default:
		usage()
	}
}
