package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/scentshop/internal/catalog"
	"github.com/angelmondragon/scentshop/internal/notify"
	"github.com/angelmondragon/scentshop/internal/storefront"
)

const shellHelp = `commands:
  search <terms>     rank the catalog (comma separated terms)
  add <name>         add one unit of a perfume
  remove <name>      remove a perfume from the cart
  qty <name> <n>     set the quantity of a cart line (0 removes)
  cart               show the cart
  state              show the session status
  help               show this help
  quit               leave the shell`

type shellSession interface {
	Search(ctx context.Context, text string) ([]catalog.RankedItem, error)
	AddToCart(ctx context.Context, name string) (storefront.CartView, error)
	RemoveFromCart(ctx context.Context, name string) (storefront.CartView, error)
	UpdateQuantity(ctx context.Context, name string, quantity int) (storefront.CartView, error)
	Cart() (storefront.CartView, error)
	Notifications() []notify.Notification
	Status() storefront.Status
	Recover(ctx context.Context, recovered any)
}

func newShellCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive storefront session on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.session()
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sess)
		},
	}
}

// runShell processes one event per input line until quit or EOF.
func runShell(ctx context.Context, in io.Reader, out io.Writer, sess shellSession) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintln(out, "scentshop shell, type help for commands")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		verb = strings.ToLower(verb)
		rest = strings.TrimSpace(rest)
		if verb == "quit" || verb == "exit" {
			return nil
		}

		if st := sess.Status(); st.Failed() {
			writeFailed(out, st)
			continue
		}

		dispatch(ctx, out, sess, verb, rest)
		writeNotifications(out, sess.Notifications())
		if st := sess.Status(); st.Failed() {
			writeFailed(out, st)
		}
	}
	return scanner.Err()
}

func dispatch(ctx context.Context, out io.Writer, sess shellSession, verb, rest string) {
	defer func() {
		if rec := recover(); rec != nil {
			sess.Recover(ctx, rec)
		}
	}()

	switch verb {
	case "search":
		items, err := sess.Search(ctx, rest)
		if err != nil {
			fmt.Fprintln(out, "error:", err)
			return
		}
		if err := writeItems(out, items, true); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	case "add":
		if rest == "" {
			fmt.Fprintln(out, "usage: add <name>")
			return
		}
		writeCartResult(ctx, out, sess.AddToCart, rest)
	case "remove":
		if rest == "" {
			fmt.Fprintln(out, "usage: remove <name>")
			return
		}
		writeCartResult(ctx, out, sess.RemoveFromCart, rest)
	case "qty":
		name, quantity, err := parseQuantityArgs(rest)
		if err != nil {
			fmt.Fprintln(out, err)
			return
		}
		view, err := sess.UpdateQuantity(ctx, name, quantity)
		writeCart(out, view, err)
	case "cart":
		view, err := sess.Cart()
		writeCart(out, view, err)
	case "state":
		st := sess.Status()
		fmt.Fprintf(out, "status: %s\n", st.State)
	case "help":
		fmt.Fprintln(out, shellHelp)
	default:
		fmt.Fprintf(out, "unknown command %q, type help for commands\n", verb)
	}
}

// parseQuantityArgs splits "<name> <n>"; the name may contain spaces.
func parseQuantityArgs(rest string) (string, int, error) {
	idx := strings.LastIndex(rest, " ")
	if idx <= 0 {
		return "", 0, fmt.Errorf("usage: qty <name> <n>")
	}
	quantity, err := strconv.Atoi(rest[idx+1:])
	if err != nil || quantity < 0 {
		return "", 0, fmt.Errorf("quantity must be a non-negative integer")
	}
	return strings.TrimSpace(rest[:idx]), quantity, nil
}

func writeCartResult(ctx context.Context, out io.Writer, op func(context.Context, string) (storefront.CartView, error), name string) {
	view, err := op(ctx, name)
	writeCart(out, view, err)
}

func writeCart(out io.Writer, view storefront.CartView, err error) {
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	if len(view.Lines) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	for _, line := range view.Lines {
		fmt.Fprintf(out, "  %d x %s @ %s = %s\n",
			line.Quantity, line.Name, line.UnitPrice.StringFixed(2), line.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(out, "  items: %d  total: %s\n", view.ItemCount, view.Total.StringFixed(2))
}

func writeNotifications(out io.Writer, ns []notify.Notification) {
	for _, n := range ns {
		fmt.Fprintf(out, "[%s] %s\n", n.Level, n.Message)
	}
}

func writeFailed(out io.Writer, st storefront.Status) {
	fmt.Fprintln(out, "Something went wrong")
	fmt.Fprintln(out, st.Message)
	fmt.Fprintln(out, "Restart the shell to continue.")
}
