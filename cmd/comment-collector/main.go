package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"comment-collector-go/internal/api"
	"comment-collector-go/internal/config"
	"comment-collector-go/internal/export"
	"comment-collector-go/internal/graph"
	"comment-collector-go/internal/logger"
	"comment-collector-go/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("comment-collector", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", ".", "path to config file")
	postID := fs.String("post-id", "", "Graph API post id (skips URL parsing)")
	csvPath := fs.String("csv", "", "destination filename (default comments.csv)")
	apiVersion := fs.String("api-version", "", "Graph API version prefix (default v19.0)")
	format := fs.String("format", "", "export format: csv, xlsx or jsonl (default csv)")
	serve := fs.Bool("serve", false, "start the form interface instead of a one-shot run")
	addr := fs.String("addr", "", "form interface listen address")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	if *apiVersion != "" {
		cfg.APIVersion = *apiVersion
	}
	if *csvPath != "" {
		cfg.CSVPath = *csvPath
	}
	if *format != "" {
		cfg.ExportFormat = *format
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	config.Normalize(&cfg)

	if *serve {
		return runServer(cfg, stderr)
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprintf(stderr, "usage: comment-collector [flags] <post_url> <access_token>\n")
		fs.PrintDefaults()
		return 1
	}
	postURL, accessToken := rest[0], rest[1]

	id := *postID
	if id == "" {
		id, err = graph.ExtractPostID(postURL)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	client := graph.NewClient(graph.ClientOptions{
		BaseURL:    cfg.GraphBaseURL,
		TimeoutSec: cfg.HTTPTimeoutSec,
	})
	collector := graph.NewCollector(client, graph.CollectorOptions{
		AccessToken: accessToken,
		APIVersion:  cfg.APIVersion,
		BaseURL:     cfg.GraphBaseURL,
		PageLimit:   cfg.PageLimit,
	})

	ctx := context.Background()
	logger.Info("collecting comments", "post_id", id, "api_version", cfg.APIVersion)
	comments, err := collector.Collect(ctx, id)
	if err != nil {
		logger.Error("collection failed", "post_id", id, "error_kind", graph.KindOf(err), "err", err)
		fmt.Fprintf(stderr, "failed to fetch comments: %v\n", err)
		return 1
	}

	if err := export.WriteFile(cfg.ExportFormat, cfg.CSVPath, comments); err != nil {
		fmt.Fprintf(stderr, "failed to write %s: %v\n", cfg.CSVPath, err)
		return 1
	}

	if store.Enabled(cfg) {
		if err := persist(ctx, cfg, id, comments); err != nil {
			logger.Warn("sqlite persistence failed", "post_id", id, "err", err)
		}
	}

	fmt.Fprintf(stdout, "Fetched %d comments. Saved to %s.\n", len(comments), cfg.CSVPath)
	fmt.Fprintln(stdout, "First 10 comments:")
	printSample(stdout, comments, 10)
	return 0
}

func persist(ctx context.Context, cfg config.Config, postID string, comments []graph.Comment) error {
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	n, err := st.SaveComments(ctx, postID, comments)
	if err != nil {
		return err
	}
	logger.Info("comments persisted", "post_id", postID, "rows", n, "path", cfg.SQLitePath)
	return nil
}

func printSample(w io.Writer, comments []graph.Comment, sampleSize int) {
	if len(comments) < sampleSize {
		sampleSize = len(comments)
	}
	for _, c := range comments[:sampleSize] {
		fmt.Fprintf(w, "- %s: %s\n", c.Author(), c.Message)
	}
}

func runServer(cfg config.Config, stderr io.Writer) int {
	srv := api.NewServer(cfg, nil)
	tlsCfg, err := api.TLSConfigFromSettings(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "failed to configure tls: %v\n", err)
		return 1
	}

	hs := &http.Server{
		Addr:      cfg.ListenAddr,
		Handler:   srv.Handler(),
		TLSConfig: tlsCfg,
	}
	logger.Info("starting form interface", "addr", cfg.ListenAddr, "tls", tlsCfg != nil)
	if tlsCfg != nil {
		err = hs.ListenAndServeTLS("", "")
	} else {
		err = hs.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("form interface failed", "err", err)
		return 1
	}
	return 0
}
