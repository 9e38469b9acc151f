// treectl builds a tree of integers from its configuration, prints it
// and, if an address is configured, serves it over http.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lopatinaanna/binarytree/config"
	"github.com/lopatinaanna/binarytree/container/tree"
	"github.com/lopatinaanna/binarytree/logs"
	"github.com/lopatinaanna/binarytree/rpcs"
	"github.com/lopatinaanna/binarytree/service"
)

const bodyLimit = 1 << 12

func main() {
	cfg := &Config{}
	parser, err := config.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := parser.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = parser.Usage()
		os.Exit(2)
	}

	logger := logs.NewLogrus(logs.LogrusLoggerProperties{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
	})

	t := tree.NewOrdered[int]()
	if err := build(t, &cfg.Tree); err != nil {
		logger.Error(context.Background(), "failed to build tree", logs.MapFields{"err": err.Error()})
		os.Exit(1)
	}

	printTree(os.Stdout, t, cfg.Tree.Order)

	if len(cfg.Http.Address) == 0 {
		return
	}

	if err := serve(t, &cfg.Http, logger); err != nil {
		logger.Error(context.Background(), "server failed", logs.MapFields{"err": err.Error()})
		os.Exit(1)
	}
}

func build(t *tree.Tree[int], cfg *TreeConfig) error {
	for _, v := range cfg.Values {
		if err := t.Add(v); err != nil {
			return err
		}
	}

	for _, v := range cfg.Remove {
		if _, err := t.Remove(v); err != nil {
			return err
		}
	}

	return nil
}

func printTree(w io.Writer, t *tree.Tree[int], order tree.Order) {
	values := make([]string, 0, t.Len())
	for v := range t.Traverse(order) {
		values = append(values, fmt.Sprint(v))
	}

	fmt.Fprintf(w, "%s order: [%s]\n", order, strings.Join(values, " "))
	fmt.Fprintf(w, "count: %d\n", t.Len())

	if min, err := t.Min(); err == nil {
		max, _ := t.Max()
		fmt.Fprintf(w, "min: %d\nmax: %d\n", min, max)
	}
}

func serve(t *tree.Tree[int], cfg *HttpConfig, logger logs.Logger) error {
	binder := rpcs.NewHttpBinder(rpcs.HttpBinderProperties{
		Encoder:        rpcs.JsonEncoder{},
		Logger:         logger,
		HandlerFactory: rpcs.NewHttpJsonHandlerFactory(logger, bodyLimit),
	})
	binder.AddPreProcessor(rpcs.NewHttpCorsPreProcessor(rpcs.HttpCorsPreProcessorProps{
		Enabled:        cfg.CorsEnabled,
		AllowedOrigins: cfg.CorsOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type", rpcs.HttpHeaderTraceID},
		ExposedHeaders: []string{rpcs.HttpHeaderTraceID},
	}))
	service.New(t, logger).Bind(binder)

	server := &http.Server{
		Addr:              cfg.Address,
		Handler:           binder.Build(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "serving tree", logs.MapFields{"address": cfg.Address})
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
