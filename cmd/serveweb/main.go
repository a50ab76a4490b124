// Command serveweb serves the wasm build made by `go run build.go web`
// with caching disabled, so a rebuild shows up on reload.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"testpge/misc"
)

var (
	TargetFolder string
	Port         uint
)

func init() {
	flag.StringVar(&TargetFolder, "folder", "./web_build", "folder to serve")
	flag.UintVar(&Port, "port", 6969, "port")
}

var epoch = time.Unix(0, 0).Format(time.RFC1123)

var noCacheHeaders = map[string]string{
	"Expires":         epoch,
	"Cache-Control":   "no-cache, private, max-age=0",
	"Pragma":          "no-cache",
	"X-Accel-Expires": "0",
}

var etagHeaders = []string{
	"ETag",
	"If-Modified-Since",
	"If-Match",
	"If-None-Match",
	"If-Range",
	"If-Unmodified-Since",
}

// NoCache strips validators from the request and tells the browser not to cache the response.
func NoCache(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, v := range etagHeaders {
			r.Header.Del(v)
		}
		for k, v := range noCacheHeaders {
			w.Header().Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

func run(ctx context.Context) error {
	if Port > math.MaxUint16 {
		return fmt.Errorf("port %v is bigger than max port value", Port)
	}
	if !filepath.IsLocal(TargetFolder) {
		return fmt.Errorf("%s is not a local folder", TargetFolder)
	}
	if info, err := os.Stat(TargetFolder); err != nil {
		return fmt.Errorf("nothing to serve, build for web first: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a folder", TargetFolder)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("localhost:%v", Port),
		Handler:           NoCache(http.FileServer(http.Dir(TargetFolder))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	misc.InfoLogger.Printf("serving %s", TargetFolder)
	misc.InfoLogger.Printf("listening to http://%s", server.Addr)

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		misc.ErrLogger.Printf("%v", err)
		os.Exit(1)
	}
}
