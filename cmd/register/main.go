package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jerrymart/quickmart/internal/adapter/storage"
	"github.com/jerrymart/quickmart/internal/config"
	"github.com/jerrymart/quickmart/internal/core/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	taxRate, err := cfg.ParsedTaxRate()
	if err != nil {
		log.Fatalf("bad tax rate: %v", err)
	}

	catalogText, err := storage.LoadCatalogText(cfg.InventoryPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	codec := storage.NewTextCodec()
	archive := storage.NewFileArchive(cfg.ReceiptDir, cfg.InventoryPath)
	checkout := service.NewCheckoutService(catalogText, taxRate, codec, storage.NewMemorySequence(), cfg.QueueSize)

	sess, err := checkout.CreateSession()
	if err != nil {
		log.Fatalf("failed to open register session: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for a := range checkout.Artifacts() {
			if err := archive.SaveReceipt(a.Transaction, a.Receipt); err != nil {
				log.Printf("failed to save receipt %06d: %v", a.Transaction.Sequence, err)
			}
			if err := archive.SaveInventorySnapshot(a.InventorySnapshot); err != nil {
				log.Printf("failed to save inventory snapshot: %v", err)
			}
		}
	}()

	fmt.Println("Jerry's Quick Mart register. Commands: items, cart, add <qty> <name>, remove <name>, member on|off, clear, checkout, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		if quit := run(sess, scanner, strings.TrimSpace(scanner.Text())); quit {
			break
		}
	}

	checkout.Close()
	wg.Wait()
}

func run(sess *service.Session, scanner *bufio.Scanner, line string) (quit bool) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "":
	case "quit", "exit":
		return true
	case "items":
		for _, s := range sess.AvailableItems() {
			fmt.Printf("%-15s %4d units  $%s/$%s  %s\n",
				s.Item.Name, s.Quantity,
				s.Item.RegularPrice.StringFixed(2), s.Item.MemberPrice.StringFixed(2),
				s.Item.TaxStatus)
		}
	case "cart":
		for _, l := range sess.CartLines() {
			fmt.Printf("%s x%d ($%s) = $%s\n", l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Total().StringFixed(2))
		}
		subtotal, tax, total := sess.Totals()
		fmt.Printf("Subtotal: $%s | Tax: $%s | Total: $%s\n",
			subtotal.StringFixed(2), tax.StringFixed(2), total.StringFixed(2))
	case "add":
		qtyField, name, ok := strings.Cut(rest, " ")
		qty, err := strconv.Atoi(qtyField)
		if !ok || err != nil {
			fmt.Println("usage: add <qty> <name>")
			return false
		}
		if err := sess.AddItem(strings.TrimSpace(name), qty); err != nil {
			fmt.Printf("cannot add: %v\n", err)
		}
	case "remove":
		sess.RemoveItem(strings.TrimSpace(rest))
	case "member":
		sess.SetMember(rest == "on")
	case "clear":
		sess.ClearCart()
		fmt.Println("cart cleared")
	case "checkout":
		promptAndCheckout(sess, scanner)
	default:
		fmt.Printf("unknown command %q\n", cmd)
	}
	return false
}

// Cash entry is an explicit state loop rather than a re-invoked prompt:
// invalid or insufficient input re-prompts, a blank line or "cancel" aborts
// with the cart left untouched.
type promptState int

const (
	awaitingInput promptState = iota
	validated
	aborted
)

func promptAndCheckout(sess *service.Session, scanner *bufio.Scanner) {
	_, _, total := sess.Totals()

	state := awaitingInput
	for state == awaitingInput {
		fmt.Printf("Total: $%s\nEnter cash amount (blank to cancel): ", total.StringFixed(2))
		if !scanner.Scan() {
			state = aborted
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.EqualFold(input, "cancel") {
			state = aborted
			break
		}

		cash, err := decimal.NewFromString(strings.TrimPrefix(input, "$"))
		if err != nil {
			fmt.Println("Not a numeric amount.")
			continue
		}

		_, receipt, err := sess.Checkout(context.Background(), cash)
		switch {
		case err == nil:
			state = validated
			fmt.Println(receipt)
		case errors.Is(err, service.ErrInsufficientCash):
			fmt.Println("Insufficient cash.")
		case errors.Is(err, service.ErrEmptyCart):
			fmt.Println("Cart is empty!")
			state = aborted
		default:
			fmt.Printf("checkout failed: %v\n", err)
			state = aborted
		}
	}

	if state == aborted {
		fmt.Println("Checkout cancelled.")
	}
}
