package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/shivesh2334-ai/ECG-LEVEL-4/config"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/lib"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

type Args struct {
	name        string
	description string
	uploader    string
	csvFile     string
}

func parseArgs() (*Args, error) {
	description := flag.String("d", "", "Description of the dataset")

	flag.Parse()

	args := flag.Args()

	if len(args) != 3 {
		return nil, fmt.Errorf("usage: go run script/import_records/main.go [dataset_name] [uploader_username] [csv_file]")
	}

	return &Args{
		name:        args[0],
		description: *description,
		uploader:    args[1],
		csvFile:     args[2],
	}, nil
}

func main() {
	config.SetupAll()

	args, err := parseArgs()

	if err != nil {
		log.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Clean(args.csvFile))

	if err != nil {
		log.Fatalf("Failed to read %s: %v", args.csvFile, err)
	}

	db := lib.GetDB(lib.WriteDBKey)

	uploaderService := &S.AnnotatorService{Service: nil, DB: db}

	uploader, err := uploaderService.FetchByUsername(args.uploader)

	if err != nil {
		log.Fatalf("Failed to find uploader %s: %v", args.uploader, err)
	}

	tx, err := db.Begin()

	if err != nil {
		log.Fatalf("Failed to open transaction: %v", err)
	}

	status := true

	defer func() {
		if e := recover(); e != nil {
			log.Printf("Rollback database due to unhandled exception: %v", e)
			tx.Rollback()
		} else if !status {
			tx.Rollback()
		} else {
			tx.Commit()
		}
	}()

	service := &S.DatasetTxService{Service: nil, DB: tx, Influx: lib.GetInfluxDB()}

	dataset, skipped, err := service.RegisterFromCSV(args.name, args.description, uploader.Id, string(content))

	if err != nil {
		log.Printf("Failed to import records: %v", err)
		status = false
		return
	}

	fmt.Println("OK")
	fmt.Printf("dataset: %s (%s)\n", dataset.Name, dataset.Uuid)
	fmt.Printf("records: %d, skipped lines: %d\n", dataset.RecordCount, skipped)
}
