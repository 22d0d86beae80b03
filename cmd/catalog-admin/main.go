// cmd/catalog-admin/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/client"
	"github.com/javajoker/storefront/internal/productform"
	"github.com/javajoker/storefront/internal/storefront"
	"github.com/javajoker/storefront/internal/upload"
)

const usage = `usage: catalog-admin [flags] <command> [args]

commands:
  login <email> <password>   sign in and remember the session
  logout                     forget the session
  categories                 list categories
  stats                      show dashboard stats
  add-product [flags] <image>...
                             upload images and create a product
`

type app struct {
	api   *client.Client
	shell *storefront.Shell
	out   io.Writer
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain returns the exit code so deferred cleanup runs before exit.
func realMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog-admin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiURL := fs.String("api", envOr("STOREFRONT_API", "http://localhost:8080"), "storefront base URL")
	sessionPath := fs.String("session", envOr("STOREFRONT_SESSION", ""), "session file")
	timeout := fs.Duration("timeout", 5*time.Minute, "overall timeout")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() { fmt.Fprint(stderr, usage); fs.PrintDefaults() }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if *sessionPath == "" {
		*sessionPath = defaultSessionPath()
	}

	store, err := storefront.OpenBoltStore(*sessionPath)
	if err != nil {
		logrus.WithError(err).Error("Failed to open session")
		return 1
	}
	defer store.Close()

	shell, err := storefront.NewShell(store)
	if err != nil {
		logrus.WithError(err).Error("Failed to restore session")
		return 1
	}

	a := &app{
		api:   client.New(*apiURL, client.WithToken(shell.User().Token)),
		shell: shell,
		out:   stdout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := a.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) != 2 {
			return errors.New("login needs an email and a password")
		}
		return a.login(ctx, args[0], args[1])
	case "logout":
		return a.shell.Logout()
	case "categories":
		return a.categories(ctx)
	case "stats":
		if err := a.require(storefront.ActionViewStats); err != nil {
			return err
		}
		return a.stats(ctx)
	case "add-product":
		if err := a.require(storefront.ActionManageCatalog); err != nil {
			return err
		}
		return a.addProduct(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) require(action storefront.Action) error {
	if d := a.shell.Authorize(action); !d.Allowed {
		return errors.New(d.Reason)
	}
	return nil
}

func (a *app) login(ctx context.Context, email, password string) error {
	session, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.shell.SignIn(storefront.CurrentUser{PublicUser: session.User, Token: session.Token}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s (%s)\n", session.User.Name, session.User.Role)
	return nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "%s\t%s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.api.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "net sales:    %.0f\n", stats.NetSales)
	fmt.Fprintf(a.out, "earnings:     %.0f\n", stats.Earnings)
	fmt.Fprintf(a.out, "page views:   %d\n", stats.PageViews)
	fmt.Fprintf(a.out, "total orders: %d\n", stats.TotalOrders)
	return nil
}

func (a *app) addProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-product", flag.ContinueOnError)
	title := fs.String("title", "", "product title")
	description := fs.String("description", "", "product description")
	price := fs.String("price", "", "selling price")
	discount := fs.String("discount", "", "discount percent")
	category := fs.String("category", "", "category name")
	categoryID := fs.String("category-id", "", "category id")
	video := fs.String("video", "", "optional video file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orchestrator := upload.NewOrchestrator(a.api, upload.WithObserver(func(key string, percent float64) {
		logrus.WithFields(logrus.Fields{"file": key, "percent": percent}).Debug("Upload progress")
	}))
	builder := productform.NewBuilder(a.api)

	var media upload.Media
	if err := a.uploadPaths(ctx, orchestrator, upload.KindImage, fs.Args(), &media); err != nil {
		return err
	}
	if *video != "" {
		if err := a.uploadPaths(ctx, orchestrator, upload.KindVideo, []string{*video}, &media); err != nil {
			return err
		}
	}

	builder.Edit(func(f *productform.Form) {
		f.Title = *title
		f.Description = *description
		f.Price = *price
		f.Discount = *discount
		f.CategoryName = *category
		f.CategoryID = *categoryID
		f.Media = media
	})

	if _, err := builder.Submit(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %q with %d image(s)\n", *title, len(media.Images))
	return nil
}

func (a *app) uploadPaths(ctx context.Context, o *upload.Orchestrator, kind upload.Kind, paths []string, media *upload.Media) error {
	files := make([]upload.File, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}
		files = append(files, upload.File{
			Name:        filepath.Base(path),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
			Size:        info.Size(),
			Body:        f,
		})
	}

	urls, err := o.Upload(ctx, kind, files, media)
	for _, u := range urls {
		fmt.Fprintln(a.out, "uploaded", u)
	}
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "storefront-session.db"
	}
	if err := os.MkdirAll(filepath.Join(dir, "storefront"), 0o700); err != nil {
		return "storefront-session.db"
	}
	return filepath.Join(dir, "storefront", "session.db")
}
