package main

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/cart"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/models"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var badgeAddr string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive cart session; optionally streams badge/toast events over websocket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var extra []notify.Notifier
		if badgeAddr != "" {
			hub := notify.NewHub(log)
			defer hub.Close()
			mux := http.NewServeMux()
			mux.Handle("/ws/cart", hub)
			srv := &http.Server{Addr: badgeAddr, Handler: mux}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("❌ badge server stopped", zap.Error(err))
				}
			}()
			defer srv.Close()
			log.Info("📡 badge events at ws://" + badgeAddr + "/ws/cart")
			extra = append(extra, hub)
		}

		svc, closeFn, err := openService(extra...)
		if err != nil {
			return err
		}
		defer closeFn()

		if _, err := svc.LoadCart(cmd.Context()); err == nil {
			printCart(cmd.OutOrStdout(), svc.Cart())
		}

		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())
		fmt.Fprint(out, "> ")
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) > 0 {
				if fields[0] == "quit" || fields[0] == "exit" {
					return nil
				}
				if err := runShellLine(cmd, svc, fields); err != nil {
					fmt.Fprintln(out, "error:", err)
				}
			}
			fmt.Fprint(out, "> ")
		}
		return scanner.Err()
	},
}

func init() {
	shellCmd.Flags().StringVar(&badgeAddr, "badge-addr", "", "listen address for the websocket badge feed (e.g. :8090)")
}

const shellHelp = `commands:
  show | add <id> [qty] [flavor] [size] | update <id> <qty> | remove <id> | clear
  login <email> <password> | logout | checkout [payment-method] | state | quit`

func runShellLine(cmd *cobra.Command, svc *cart.Service, f []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	arg := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return ""
	}

	var (
		c   models.Cart
		err error
	)
	switch f[0] {
	case "show":
		c, err = svc.LoadCart(ctx)
	case "add":
		if len(f) < 2 {
			return errors.New("usage: add <id> [qty] [flavor] [size]")
		}
		qty := 1
		if q := arg(2); q != "" {
			if qty, err = strconv.Atoi(q); err != nil {
				return fmt.Errorf("invalid quantity %q", q)
			}
		}
		c, err = svc.AddItem(ctx, f[1], qty, arg(3), arg(4))
	case "update":
		if len(f) < 3 {
			return errors.New("usage: update <id> <qty>")
		}
		qty, convErr := strconv.Atoi(f[2])
		if convErr != nil {
			return fmt.Errorf("invalid quantity %q", f[2])
		}
		c, err = svc.UpdateItemQuantity(ctx, f[1], qty)
	case "remove":
		if len(f) < 2 {
			return errors.New("usage: remove <id>")
		}
		c, err = svc.RemoveItem(ctx, f[1])
	case "clear":
		c, err = svc.ClearCart(ctx)
	case "login":
		if len(f) < 3 {
			return errors.New("usage: login <email> <password>")
		}
		var redirect string
		if redirect, err = svc.Login(ctx, f[1], f[2]); err == nil && redirect != "" {
			fmt.Fprintln(out, "➡️ continue at", redirect)
		}
		c = svc.Cart()
	case "logout":
		return svc.Logout()
	case "checkout":
		method := arg(1)
		if method == "" {
			method = "card"
		}
		return checkout(cmd, svc, models.CheckoutRequest{PaymentMethod: method})
	case "state":
		fmt.Fprintln(out, svc.State())
		return nil
	default:
		fmt.Fprintln(out, shellHelp)
		return nil
	}
	if err != nil {
		return err
	}
	printCart(out, c)
	return nil
}
