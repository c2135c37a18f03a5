package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/cart"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/localstore"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/notify"
	"github.com/spf13/cobra"
)

// consoleNotifier prints toasts and badge changes for a terminal user.
type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Badge(count int) {
	if count == 0 {
		fmt.Fprintln(n.out, "🛒 (empty)")
		return
	}
	fmt.Fprintf(n.out, "🛒 %d item(s)\n", count)
}

func (n consoleNotifier) Toast(level notify.Level, message string) {
	fmt.Fprintf(n.out, "[%s] %s\n", level, message)
}

// openService wires a cart service to the persistent local store. The
// returned close func releases the store.
func openService(extra ...notify.Notifier) (*cart.Service, func(), error) {
	store, err := localstore.OpenSQLite(cfg.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	notifiers := append([]notify.Notifier{consoleNotifier{out: os.Stderr}, notify.NewLogNotifier(log)}, extra...)
	svc := cart.NewService(cart.Config{
		BaseURL:     cfg.APIURL,
		LoginURL:    cfg.LoginURL,
		CheckoutURL: cfg.CheckoutURL,
		Timeout:     cfg.HTTPTimeout,
	}, store, notify.Multi(notifiers...), log)
	return svc, func() { store.Close() }, nil
}

// withService runs fn against a freshly opened service.
func withService(fn func(cmd *cobra.Command, svc *cart.Service, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService()
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(cmd, svc, args)
	}
}

func printCart(w io.Writer, c models.Cart) {
	if len(c.Items) == 0 {
		fmt.Fprintln(w, "Cart is empty")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tFLAVOR\tSIZE\tQTY\tUNIT\tTOTAL")
	for _, item := range c.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			item.ProductID, item.ProductName, item.Flavor, item.Size, item.Quantity, item.UnitPrice, item.TotalPrice)
	}
	fmt.Fprintf(tw, "\t\t\t\t%d\t\t%.2f\n", c.TotalItems, c.TotalAmount)
	tw.Flush()
}

func addCartCommands(root *cobra.Command) {
	cartCmd := &cobra.Command{Use: "cart", Short: "Inspect and change the cart"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Load and print the cart",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, _ []string) error {
			c, err := svc.LoadCart(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		}),
	}

	var flavor, size string
	addCmd := &cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Add a product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, args []string) error {
			qty := 1
			if len(args) == 2 {
				var err error
				if qty, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("invalid quantity %q", args[1])
				}
			}
			c, err := svc.AddItem(cmd.Context(), args[0], qty, flavor, size)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		}),
	}
	addCmd.Flags().StringVar(&flavor, "flavor", "", "product flavor")
	addCmd.Flags().StringVar(&size, "size", "", "product size")

	updateCmd := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set the quantity of a cart line (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			c, err := svc.UpdateItemQuantity(cmd.Context(), args[0], qty)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		}),
	}

	removeCmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, args []string) error {
			c, err := svc.RemoveItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), c)
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, _ []string) error {
			_, err := svc.ClearCart(cmd.Context())
			return err
		}),
	}

	exportCmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the cart to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, args []string) error {
			c, err := svc.LoadCart(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := cart.ExportXLSX(f, c); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}),
	}

	cartCmd.AddCommand(showCmd, addCmd, updateCmd, removeCmd, clearCmd, exportCmd)
	root.AddCommand(cartCmd)

	var email, password string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in; migrates the anonymous cart if checkout asked for it",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, _ []string) error {
			redirect, err := svc.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if redirect != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "➡️ continue at", redirect)
			}
			printCart(cmd.OutOrStdout(), svc.Cart())
			return nil
		}),
	}
	loginCmd.Flags().StringVar(&email, "email", "", "account e-mail")
	loginCmd.Flags().StringVar(&password, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, _ []string) error {
			return svc.Logout()
		}),
	}

	var req models.CheckoutRequest
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out, or get sent to login first",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *cart.Service, _ []string) error {
			if _, err := svc.LoadCart(cmd.Context()); err != nil {
				return err
			}
			return checkout(cmd, svc, req)
		}),
	}
	checkoutCmd.Flags().StringVar(&req.PaymentMethod, "payment-method", "card", "card, pix or cod")
	checkoutCmd.Flags().StringVar(&req.ShippingAddress.Street, "street", "", "shipping street")
	checkoutCmd.Flags().StringVar(&req.ShippingAddress.City, "city", "", "shipping city")
	checkoutCmd.Flags().StringVar(&req.ShippingAddress.State, "state", "", "shipping state")
	checkoutCmd.Flags().StringVar(&req.ShippingAddress.PostalCode, "postal-code", "", "shipping postal code")
	checkoutCmd.Flags().StringVar(&req.ShippingAddress.Country, "country", "", "shipping country")

	root.AddCommand(loginCmd, logoutCmd, checkoutCmd)
}

func checkout(cmd *cobra.Command, svc *cart.Service, req models.CheckoutRequest) error {
	decision, err := svc.HandleCheckout()
	if err != nil {
		return err
	}
	if decision.Action == cart.RedirectToLogin {
		fmt.Fprintln(cmd.OutOrStdout(), "🔑 log in first:", decision.URL)
		return nil
	}
	order, err := svc.Checkout(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "📦 order #%d placed, total %.2f (%s)\n", order.ID, order.TotalAmount, order.PaymentStatus)
	return nil
}
