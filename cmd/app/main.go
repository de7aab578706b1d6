package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"fulfillment/cmd"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/restaurant"
	"fulfillment/internal/core/domain/model/rider"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()

	app, err := cmd.NewCompositionRoot(configs)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.Orchestrator().Run(ctx)

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer app.JobManager().StopAll()

	if err := seedDemoData(ctx, app); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	startWebServer(configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		KitchenPrepTime:  goDotEnvVariable("KITCHEN_PREP_TIME"),
		TransitLegTime:   goDotEnvVariable("TRANSIT_LEG_TIME"),
		RedispatchMaxAge: goDotEnvVariable("REDISPATCH_MAX_AGE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// seedDemoData populates the in-memory engine with a couple of restaurants,
// riders and one paid order so a fresh process has traffic to show.
func seedDemoData(ctx context.Context, app *cmd.CompositionRoot) error {
	bistro, err := newRestaurant(1, "Bistro Madras", 28.60, 77.20,
		menuItem{"Masala Dosa", 120},
		menuItem{"Paneer Tikka", 220},
	)
	if err != nil {
		return err
	}
	wok, err := newRestaurant(2, "Golden Wok", 28.55, 77.30,
		menuItem{"Hakka Noodles", 180},
		menuItem{"Spring Rolls", 140},
	)
	if err != nil {
		return err
	}
	for _, r := range []*restaurant.Restaurant{bistro, wok} {
		if err := app.Registry().Register(ctx, r); err != nil {
			return err
		}
	}

	for i, name := range []string{"Ravi", "Meena"} {
		loc, err := kernel.NewLocation(28.58+float64(i)*0.05, 77.22)
		if err != nil {
			return err
		}
		courier, err := rider.NewRider(int64(i+1), name, loc, 4.5)
		if err != nil {
			return err
		}
		if err := app.Pool().Add(ctx, courier); err != nil {
			return err
		}
	}

	loc, err := kernel.NewLocation(28.65, 77.25)
	if err != nil {
		return err
	}
	cust, err := customer.NewCustomer(1, "Asha", "14 Lake Road", loc)
	if err != nil {
		return err
	}
	if err := cust.Cart().SetRestaurant(bistro); err != nil {
		return err
	}
	if err := cust.Cart().AddItem(bistro.Menu()[0], 2); err != nil {
		return err
	}

	aggregate, err := app.Orchestrator().Checkout(ctx, cust, order.TypeDelivery)
	if err != nil {
		return err
	}
	aggregate.MarkPaid()
	return app.Orchestrator().Process(ctx, aggregate.ID())
}

type menuItem struct {
	name  string
	price float64
}

func newRestaurant(id int64, name string, lat, lon float64, items ...menuItem) (*restaurant.Restaurant, error) {
	loc, err := kernel.NewLocation(lat, lon)
	if err != nil {
		return nil, err
	}
	r, err := restaurant.NewRestaurant(id, name, loc)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		dish, err := restaurant.NewDish(item.name, item.price)
		if err != nil {
			return nil, err
		}
		if err := r.AddDish(dish); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func startWebServer(port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
