package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/streamnest/vod-catalog/pkg/api"
	"github.com/urfave/cli/v2"
	"go-micro.dev/v4"
	"go-micro.dev/v4/client"
)

const (
	serviceName    = "vod-catalog"
	defaultTimeout = 2 * time.Minute
)

func call(cli client.Client, endpoint string, req, resp any) error {
	request := cli.NewRequest(serviceName, endpoint, req)
	return cli.Call(context.Background(), request, resp, client.WithRequestTimeout(defaultTimeout))
}

func main() {
	var term string
	var tab string
	service := micro.NewService(
		micro.Name(serviceName+".catalogctl"),
		micro.Flags(
			&cli.StringFlag{
				Name:        "term",
				Usage:       "Search term",
				Required:    true,
				Destination: &term,
			},
			&cli.StringFlag{
				Name:        "tab",
				Usage:       "Catalog tab (home, movies, tvshow, anime)",
				Value:       "home",
				Destination: &tab,
			},
		),
	)
	service.Init()

	var results api.QueryResponse
	err := call(service.Client(), "Catalog.Query", &api.QueryRequest{Tab: tab, Term: term}, &results)
	if err != nil {
		panic(err)
	}

	if len(results.Items) == 0 {
		fmt.Println("Nothing found")
		return
	}
	for i, item := range results.Items {
		kind := "movie"
		if item.IsSeries {
			kind = "series"
		}
		fmt.Printf("#%d. %s (%s) [%s, rating %.1f]\n", i+1, item.Title, item.Year, kind, item.Rating)
	}
	fmt.Println("\nSelect which one:")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	no, err := strconv.ParseInt(scanner.Text(), 10, 32)
	if err != nil || no < 1 || int(no) > len(results.Items) {
		panic("invalid selection")
	}
	selected := results.Items[no-1]

	var opened api.OpenResponse
	err = call(service.Client(), "Player.Open", &api.OpenRequest{ClientID: "catalogctl", TitleID: selected.ID}, &opened)
	if err != nil {
		panic(err)
	}

	status := opened.Status
	fmt.Println("State: ", status.State)
	if status.Source != nil {
		fmt.Printf("Playing: %s [%s]\n", status.Source.URL, status.Source.Label)
	}
	if status.Resume != nil && status.Resume.Eligible {
		fmt.Printf("Resume available at %.0fs of %.0fs\n", status.Resume.Time, status.Resume.Duration)
	}
	for _, src := range status.Sources {
		fmt.Printf("  variant: %s [%s]\n", src.URL, src.Label)
	}
}
