package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/drfsm113/storefront-client/internal/auth"
	"github.com/drfsm113/storefront-client/internal/config"
	"github.com/drfsm113/storefront-client/internal/di"
	"github.com/drfsm113/storefront-client/internal/dto"
	"github.com/drfsm113/storefront-client/internal/logger"
)

const usage = `Usage: storefront <command> [flags]

Commands:
  login      -email -password      Sign in and persist the session
  logout                           Sign out and clear the session
  register   -email -password ...  Create an account
  whoami                           Show the signed-in user
  products   [-search -category -page]
  product    <slug>
  cart       show|add|update|remove|clear [flags]
  wishlist   show|toggle [flags]
`

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "warn",
		ServiceName: "storefront",
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	app, err := di.New(ctx, cfg, logger.Get())
	if err != nil {
		log.Fatalf("Failed to initialize client: %v", err)
	}
	defer app.Close()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(ctx, app, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, auth.ErrSessionExpired) {
			fmt.Fprintln(os.Stderr, "Your session has expired, please log in again.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, app *di.Container, cmd string, args []string) error {
	switch cmd {
	case "login":
		return runLogin(ctx, app, args)
	case "logout":
		app.Logout(ctx)
		fmt.Println("Logged out.")
		return nil
	case "register":
		return runRegister(ctx, app, args)
	case "whoami":
		return runWhoami(ctx, app)
	case "products":
		return runProducts(ctx, app, args)
	case "product":
		if len(args) != 1 {
			return errors.New("usage: storefront product <slug>")
		}
		product, err := app.Catalog.Product(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(product)
	case "cart":
		return runCart(ctx, app, args)
	case "wishlist":
		return runWishlist(ctx, app, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func runLogin(ctx context.Context, app *di.Container, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	fs.Parse(args)

	if *email == "" {
		return errors.New("login requires -email")
	}
	if *password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		*password = string(raw)
	}

	out, err := app.Auth.Login(ctx, *email, *password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", *email, out.Role)
	return nil
}

func runRegister(ctx context.Context, app *di.Container, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	first := fs.String("first-name", "", "first name")
	last := fs.String("last-name", "", "last name")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return errors.New("register requires -email and -password")
	}

	_, err := app.Auth.Register(ctx, &dto.RegisterRequest{
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
		Phone:     *phone,
	})
	if err != nil {
		return err
	}
	fmt.Println("Account created. Log in to continue.")
	return nil
}

func runWhoami(ctx context.Context, app *di.Container) error {
	if !app.Auth.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}
	user, err := app.Account.UserDetails(ctx)
	if err != nil {
		return err
	}
	return printJSON(user)
}

func runProducts(ctx context.Context, app *di.Container, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search term")
	category := fs.String("category", "", "category slug")
	page := fs.Int("page", 0, "page number")
	fs.Parse(args)

	list, err := app.Catalog.Products(ctx, &dto.ProductFilter{
		Search:   *search,
		Category: *category,
		Page:     *page,
	})
	if err != nil {
		return err
	}
	return printJSON(list)
}

func runCart(ctx context.Context, app *di.Container, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: storefront cart show|add|update|remove|clear")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		state, err := app.Cart.Fetch(ctx)
		if err != nil {
			return err
		}
		return printJSON(state)
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		product := fs.String("product", "", "product slug")
		variant := fs.String("variant", "", "product variant slug")
		qty := fs.Int("qty", 1, "quantity")
		fs.Parse(rest)
		if *product == "" && *variant == "" {
			return errors.New("cart add requires -product or -variant")
		}
		state, err := app.Cart.Add(ctx, *product, *variant, *qty)
		if err != nil {
			return err
		}
		return printJSON(state)
	case "update":
		fs := flag.NewFlagSet("cart update", flag.ExitOnError)
		item := fs.String("item", "", "cart item slug")
		qty := fs.Int("qty", 1, "quantity")
		fs.Parse(rest)
		if *item == "" {
			return errors.New("cart update requires -item")
		}
		state, err := app.Cart.UpdateItem(ctx, *item, *qty)
		if err != nil {
			return err
		}
		return printJSON(state)
	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		item := fs.String("item", "", "cart item slug")
		fs.Parse(rest)
		if *item == "" {
			return errors.New("cart remove requires -item")
		}
		state, err := app.Cart.Remove(ctx, *item)
		if err != nil {
			return err
		}
		return printJSON(state)
	case "clear":
		state, err := app.Cart.Clear(ctx)
		if err != nil {
			return err
		}
		return printJSON(state)
	default:
		return fmt.Errorf("unknown cart command: %s", sub)
	}
}

func runWishlist(ctx context.Context, app *di.Container, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: storefront wishlist show|toggle")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "show":
		state, err := app.Wishlist.Fetch(ctx)
		if err != nil {
			return err
		}
		return printJSON(state)
	case "toggle":
		fs := flag.NewFlagSet("wishlist toggle", flag.ExitOnError)
		product := fs.String("product", "", "product slug")
		variant := fs.String("variant", "", "product variant slug")
		fs.Parse(rest)
		if *product == "" {
			return errors.New("wishlist toggle requires -product")
		}
		state, err := app.Wishlist.Toggle(ctx, *product, *variant)
		if err != nil {
			return err
		}
		return printJSON(state)
	default:
		return fmt.Errorf("unknown wishlist command: %s", sub)
	}
}

func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimSpace(string(raw)))
	return nil
}
