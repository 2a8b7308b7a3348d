package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/vmarket/storecore/config"
	"github.com/vmarket/storecore/internal/app"
	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/store"
)

var configFile = flag.String("c", "storecore.yml", "configuration file")

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	// Flush data even when the process is interrupted.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		application.Release()
		os.Exit(0)
	}()

	runMenu(application)
}

func runMenu(application *app.Application) {
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println()
		fmt.Println("=== Store Menu ===")
		fmt.Println(" 1. List products")
		fmt.Println(" 2. Add product")
		fmt.Println(" 3. Delete product")
		fmt.Println(" 4. Total stock value")
		fmt.Println(" 5. List clients")
		fmt.Println(" 6. Register client")
		fmt.Println(" 7. Place order")
		fmt.Println(" 8. List orders")
		fmt.Println(" 9. Update order status")
		fmt.Println("10. Units sold per product")
		fmt.Println("11. Export sales report (CSV)")
		fmt.Println("12. Backup snapshot (JSON)")
		fmt.Println(" 0. Save and exit")

		choice := prompt(in, "choice")
		switch choice {
		case "1":
			for _, p := range application.ProductService().FindAll() {
				fmt.Printf("[%d] %-24s %10.2f  stock=%-4d %s\n", p.ID, p.Name, p.Price, p.StockQuantity, p.Type)
			}
		case "2":
			addProduct(in, application)
		case "3":
			id, err := cast.ToInt64E(prompt(in, "product id"))
			if err != nil {
				fmt.Println("invalid id")
				continue
			}
			report(application.ProductService().Delete(id))
		case "4":
			fmt.Printf("total stock value: %.2f\n", application.ProductService().TotalStockValue())
		case "5":
			for _, c := range application.ClientService().FindAll() {
				fmt.Printf("[%d] %s <%s> orders=%d\n", c.ID, c.Name, c.Email, len(c.OrderHistory))
			}
		case "6":
			registerClient(in, application)
		case "7":
			placeOrder(in, application)
		case "8":
			for _, o := range application.OrderService().FindAll() {
				fmt.Printf("[%d] client=%d lines=%d total=%.2f %s %s\n",
					o.ID, o.ClientID, len(o.Lines), o.Total, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
			}
		case "9":
			updateStatus(in, application)
		case "10":
			for name, units := range application.OrderService().UnitsSoldPerProduct() {
				fmt.Printf("%-24s %d\n", name, units)
			}
		case "11":
			path := filepath.Join(application.Config().System.Workdir, "sales_report.csv")
			report(application.OrderService().ExportSalesReportCSV(path))
		case "12":
			name := fmt.Sprintf("snapshot-%s.json", time.Now().Format("20060102-150405"))
			path := filepath.Join(application.Config().System.Workdir, name)
			report(application.BackupSnapshot(path))
		case "0", "":
			return
		default:
			fmt.Println("unknown choice")
		}
	}
}

func addProduct(in *bufio.Scanner, application *app.Application) {
	name := prompt(in, "name")
	price, err := cast.ToFloat64E(prompt(in, "price"))
	if err != nil {
		fmt.Println("invalid price")
		return
	}
	stock, err := cast.ToIntE(prompt(in, "stock"))
	if err != nil {
		fmt.Println("invalid stock")
		return
	}
	ptype, err := domain.ParseProductType(strings.ToUpper(prompt(in, "category (ELECTRONIC/BOOKS/CLOTHING)")))
	if err != nil {
		fmt.Println(err)
		return
	}
	desc := prompt(in, "description")

	p, err := application.ProductService().SaveOrUpdate(domain.Product{
		Name:          name,
		Price:         price,
		Type:          ptype,
		StockQuantity: stock,
		Description:   desc,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("product %d saved\n", p.ID)
}

func registerClient(in *bufio.Scanner, application *app.Application) {
	c, err := application.ClientService().SaveOrUpdate(domain.Client{
		Credentials: domain.Credentials{
			Name:     prompt(in, "name"),
			Email:    prompt(in, "email"),
			Password: prompt(in, "password"),
		},
		DeliveryAddress: prompt(in, "delivery address"),
		PhoneNumber:     prompt(in, "phone number"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("client %d registered\n", c.ID)
}

func placeOrder(in *bufio.Scanner, application *app.Application) {
	client, ok := application.ClientService().Authenticate(prompt(in, "email"), prompt(in, "password"))
	if !ok {
		fmt.Println("authentication failed")
		return
	}

	cart := store.Cart{}
	for {
		raw := prompt(in, "product id (empty to finish)")
		if raw == "" {
			break
		}
		pid, err := cast.ToInt64E(raw)
		if err != nil {
			fmt.Println("invalid id")
			continue
		}
		qty, err := cast.ToIntE(prompt(in, "quantity"))
		if err != nil {
			fmt.Println("invalid quantity")
			continue
		}
		cart[pid] = qty
	}

	order, err := application.OrderService().PlaceOrder(client.ID, cart)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("order %d placed, total %.2f\n", order.ID, order.Total)
}

func updateStatus(in *bufio.Scanner, application *app.Application) {
	id, err := cast.ToInt64E(prompt(in, "order id"))
	if err != nil {
		fmt.Println("invalid id")
		return
	}
	status, err := domain.ParseOrderStatus(strings.ToUpper(prompt(in, "new status")))
	if err != nil {
		fmt.Println(err)
		return
	}
	o, err := application.OrderService().UpdateStatus(id, status)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("order %d is now %s\n", o.ID, o.Status)
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s> ", label)
	if !in.Scan() {
		zap.L().Debug("stdin closed")
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func report(err error) {
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("ok")
}
