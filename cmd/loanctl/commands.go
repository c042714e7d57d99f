package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/segyhp/dealer-loans/internal/bootstrap"
	"github.com/segyhp/dealer-loans/internal/domain"
	"github.com/segyhp/dealer-loans/internal/repository"
	"github.com/segyhp/dealer-loans/internal/service"
	"github.com/segyhp/dealer-loans/pkg/validation"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type opener func(ctx context.Context) (*bootstrap.App, error)

func commands(open opener, out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&initTablesCmd{open: open, out: out},
		&clearTablesCmd{open: open, out: out, in: os.Stdin},
		&quoteCmd{out: out},
	}
}

type initTablesCmd struct {
	open      opener
	out       io.Writer
	overwrite bool
	tables    string
}

func (*initTablesCmd) Name() string     { return "init-tables" }
func (*initTablesCmd) Synopsis() string { return "create the storage tables empty" }
func (*initTablesCmd) Usage() string {
	return `loanctl init-tables [-overwrite] [-tables loans,borrowers,...]

  Creates the tables in the configured storage. Existing tables are kept
  unless -overwrite is given, which empties them.
`
}

func (c *initTablesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.overwrite, "overwrite", false, "Empty tables that already exist.")
	f.StringVar(&c.tables, "tables", "", "Comma separated tables to create (default: all).")
}

func (c *initTablesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := c.open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	created, err := repository.InitTables(ctx, app.Store, splitList(c.tables), c.overwrite)
	for _, name := range created {
		fmt.Fprintf(c.out, "%s table initialized\n", name)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type clearTablesCmd struct {
	open opener
	out  io.Writer
	in   io.Reader
	yes  bool
}

func (*clearTablesCmd) Name() string     { return "clear-tables" }
func (*clearTablesCmd) Synopsis() string { return "drop every storage table" }
func (*clearTablesCmd) Usage() string {
	return `loanctl clear-tables [-yes]

  Drops every table of the configured storage. Asks for confirmation
  unless -yes is given.
`
}

func (c *clearTablesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation.")
}

func (c *clearTablesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprint(c.out, "Are you sure you want to clear all tables? (y/n): ")
		answer, _ := bufio.NewReader(c.in).ReadString('\n')
		if strings.TrimSpace(answer) != "y" {
			fmt.Fprintln(c.out, "No tables were cleared")
			return subcommands.ExitSuccess
		}
	}

	app, err := c.open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	dropped, err := repository.ClearTables(ctx, app.Store)
	for _, name := range dropped {
		fmt.Fprintf(c.out, "%s table removed\n", name)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type quoteCmd struct {
	out          io.Writer
	principal    string
	installment  string
	rate         string
	installments int
	currency     string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "compute the installment or principal of a loan" }
func (*quoteCmd) Usage() string {
	return `loanctl quote (-principal <amount> | -installment <amount>) -rate <rate> -n <count> [-currency UYU]

  Given a principal, prints the monthly installment; given an installment,
  prints the principal it pays off. Both include the total payable.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.principal, "principal", "", "Amount lent.")
	f.StringVar(&c.installment, "installment", "", "Monthly installment.")
	f.StringVar(&c.rate, "rate", "", "Periodic interest rate, e.g. 0.02.")
	f.IntVar(&c.installments, "n", 0, "Number of monthly installments.")
	f.StringVar(&c.currency, "currency", "UYU", "Currency code (USD, UYU, EUR).")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.request()
	if err == nil {
		err = validation.Struct(validation.New(), req)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	q, err := service.Quote(req, domain.CurrencyUYU)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(q); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *quoteCmd) request() (service.QuoteRequest, error) {
	req := service.QuoteRequest{InstallmentCount: c.installments, Currency: strings.ToUpper(c.currency)}
	var err error
	if req.Rate, err = decimal.NewFromString(c.rate); err != nil {
		return req, fmt.Errorf("invalid -rate: %w", err)
	}
	if c.principal != "" {
		d, err := decimal.NewFromString(c.principal)
		if err != nil {
			return req, fmt.Errorf("invalid -principal: %w", err)
		}
		req.Principal = &d
	}
	if c.installment != "" {
		d, err := decimal.NewFromString(c.installment)
		if err != nil {
			return req, fmt.Errorf("invalid -installment: %w", err)
		}
		req.MonthlyInstallment = &d
	}
	return req, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
