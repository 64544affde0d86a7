// Command storectl inspects and advances shopper orders through the api
// service.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/mastice-lab/storefront/internal/order/domain"
	ordergrpc "github.com/mastice-lab/storefront/internal/order/grpc"
	"github.com/mastice-lab/storefront/pkg/config"
	"github.com/mastice-lab/storefront/pkg/rpc"
	"github.com/mastice-lab/storefront/pkg/tracing"
)

type orderAPI interface {
	ListOrders(ctx context.Context, shopperID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, shopperID, orderID string) (domain.Order, error)
	UpdateStatus(ctx context.Context, shopperID, orderID string, s domain.Status) (domain.Order, error)
}

type cli struct {
	addr    string
	shopper string
	timeout time.Duration

	orders orderAPI
	conn   *grpc.ClientConn
}

func main() {
	if err := newRootCmd(&cli{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "storectl",
		Short:         "Operate on Mastice storefront orders",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.orders != nil {
				return nil
			}
			conn, err := rpc.Dial(c.addr, grpc.WithChainUnaryInterceptor(tracing.UnaryClientInterceptor()))
			if err != nil {
				return fmt.Errorf("dial %s: %w", c.addr, err)
			}
			c.conn = conn
			c.orders = ordergrpc.NewClient(conn)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c.conn != nil {
				return c.conn.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.addr, "addr", config.Load().APIAddr, "api service address")
	root.PersistentFlags().StringVar(&c.shopper, "shopper", "", "shopper id owning the orders")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 5*time.Second, "per-call timeout")
	_ = root.MarkPersistentFlagRequired("shopper")

	orders := &cobra.Command{Use: "orders", Short: "Inspect and update orders"}
	orders.AddCommand(c.listCmd(), c.getCmd(), c.setStatusCmd())
	root.AddCommand(orders)
	return root
}

func (c *cli) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.timeout)
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List a shopper's orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			orders, err := c.orders.ListOrders(ctx, c.shopper)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tITEMS\tTOTAL\tTRACKING")
			for _, o := range orders {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
					o.ID, o.OrderDate.Format(time.DateTime), o.Status, len(o.Items), o.GrandTotal(), o.TrackingNumber)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORDER_ID",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.ctx(cmd)
			defer cancel()

			o, err := c.orders.GetOrder(ctx, c.shopper, args[0])
			if err != nil {
				return err
			}
			printOrder(cmd, o)
			return nil
		},
	}
}

func (c *cli) setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set-status ORDER_ID STATUS",
		Short:     "Move an order to a new status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: statusNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.Status(args[1])
			if !st.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}

			ctx, cancel := c.ctx(cmd)
			defer cancel()

			o, err := c.orders.UpdateStatus(ctx, c.shopper, args[0], st)
			if err != nil {
				return err
			}
			printOrder(cmd, o)
			return nil
		},
	}
}

func printOrder(cmd *cobra.Command, o domain.Order) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "order    %s\n", o.ID)
	fmt.Fprintf(out, "date     %s\n", o.OrderDate.Format(time.DateTime))
	fmt.Fprintf(out, "status   %s\n", o.Status)
	if o.TrackingNumber != "" {
		fmt.Fprintf(out, "tracking %s\n", o.TrackingNumber)
	}
	fmt.Fprintf(out, "payment  %s\n", o.PaymentMethod)
	for _, it := range o.Items {
		fmt.Fprintf(out, "  %d x %s %s @ %d\n", it.Quantity, it.Name, it.Color, it.Price)
	}
	fmt.Fprintf(out, "total    %d (+%d shipping) = %d\n", o.TotalPrice, o.ShippingFee, o.GrandTotal())
}

func statusNames() []string {
	var out []string
	for _, s := range domain.Statuses() {
		out = append(out, string(s))
	}
	return out
}
